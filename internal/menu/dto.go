package menu

import (
	"time"

	"github.com/shopspring/decimal"
)

// ===== food items =====

type CreateFoodItemRequest struct {
	Name     string          `json:"name" binding:"required,max=100"`
	Category string          `json:"category" binding:"required,oneof=main side dessert drink snack"`
	VegType  string          `json:"veg_type" binding:"required,oneof=veg nonveg"`
	Price    decimal.Decimal `json:"price" swaggertype:"string"`
	ImageURL string          `json:"image_url" binding:"omitempty,url,max=512"`
}

// 部分更新（nil は変更なし）
type UpdateFoodItemRequest struct {
	Name     *string          `json:"name" binding:"omitempty,max=100"`
	Category *string          `json:"category" binding:"omitempty,oneof=main side dessert drink snack"`
	VegType  *string          `json:"veg_type" binding:"omitempty,oneof=veg nonveg"`
	Price    *decimal.Decimal `json:"price" swaggertype:"string"`
	ImageURL *string          `json:"image_url" binding:"omitempty,max=512"`
}

type FoodItemResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  Category        `json:"category"`
	VegType   VegType         `json:"veg_type"`
	Price     decimal.Decimal `json:"price" swaggertype:"string"`
	ImageURL  string          `json:"image_url"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type FoodItemListResponse struct {
	Items []FoodItemResponse `json:"items"`
	Total int                `json:"total"`
}

func toFoodItemResponse(f *FoodItem) FoodItemResponse {
	return FoodItemResponse{
		ID:        f.ID,
		Name:      f.Name,
		Category:  f.Category,
		VegType:   f.VegType,
		Price:     f.Price,
		ImageURL:  f.ImageURL,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// ===== meals =====

type SetMenuRequest struct {
	Date        string   `json:"date" binding:"omitempty,ymd"` // 空なら今日
	MealType    string   `json:"meal_type" binding:"required,meal_type"`
	FoodItemIDs []string `json:"food_item_ids" binding:"required,min=1,max=30,dive,required"`
}

type MealResponse struct {
	Date      string     `json:"date"`
	MealType  string     `json:"meal_type"`
	Items     []MenuItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// DayMenuResponse: 3区分すべてのキーを持つ（未設定は空配列）
type DayMenuResponse struct {
	Date  string                `json:"date"`
	Meals map[string][]MenuItem `json:"meals"`
}
