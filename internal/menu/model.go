package menu

import (
	"time"

	"github.com/shopspring/decimal"

	"aais-kitchen-backend/internal/platform/mealtype"
)

type Category string

const (
	CategoryMain    Category = "main"
	CategorySide    Category = "side"
	CategoryDessert Category = "dessert"
	CategoryDrink   Category = "drink"
	CategorySnack   Category = "snack"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryMain, CategorySide, CategoryDessert, CategoryDrink, CategorySnack:
		return true
	}
	return false
}

type VegType string

const (
	Veg    VegType = "veg"
	NonVeg VegType = "nonveg"
)

func (v VegType) Valid() bool { return v == Veg || v == NonVeg }

type FoodItem struct {
	ID        string
	Name      string
	Category  Category
	VegType   VegType
	Price     decimal.Decimal
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MenuItem: meals.menu に保存するスナップショット。後から品目が変わっても献立は変わらない
type MenuItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ImageURL string  `json:"image_url"`
	VegType  VegType `json:"veg_type"`
}

// meals.menu の JSON 形式 {"items":[...]}
type Menu struct {
	Items []MenuItem `json:"items"`
}

type Meal struct {
	ID          string
	FranchiseID string
	Date        time.Time
	MealType    mealtype.MealType
	Menu        Menu
	UpdatedAt   time.Time
}
