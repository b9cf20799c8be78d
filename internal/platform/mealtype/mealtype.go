package mealtype

import (
	"fmt"
	"strings"
)

type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
)

// All: 1日の食事区分（この順で QR を発行・集計する）
func All() []MealType {
	return []MealType{Breakfast, Lunch, Dinner}
}

func (m MealType) Valid() bool {
	switch m {
	case Breakfast, Lunch, Dinner:
		return true
	}
	return false
}

func (m MealType) Upper() string { return strings.ToUpper(string(m)) }

// Parse: 大文字小文字・前後空白は無視
func Parse(s string) (MealType, error) {
	m := MealType(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("unknown meal type %q", s)
	}
	return m, nil
}

// Counts: 食事区分ごとの件数。3区分とも必ずキーを持つ
func Counts() map[MealType]int64 {
	out := make(map[MealType]int64, 3)
	for _, m := range All() {
		out[m] = 0
	}
	return out
}
