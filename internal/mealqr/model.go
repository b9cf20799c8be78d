package mealqr

import (
	"time"

	"aais-kitchen-backend/internal/platform/mealtype"
)

type Code struct {
	ID          string
	FranchiseID string
	Date        time.Time
	MealType    mealtype.MealType
	QRCode      string
	CreatedAt   time.Time
}

type GenerateResult struct {
	Date    time.Time
	Codes   []Code
	Created bool // false: 既に発行済みだったので何も挿入していない
}
