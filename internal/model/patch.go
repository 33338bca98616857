// Package model はドメインモデルを定義する。
package model

import "time"

// FoodPatch は食品リスティングの部分更新を表す。
// nilのフィールドは「変更しない」を意味する。
// PUT /updateFood/:id のボディに含まれるフィールドだけが適用される。
type FoodPatch struct {
	FoodName        *string    `json:"foodName"`
	FoodImage       *string    `json:"foodImage"`
	FoodQuantity    *string    `json:"foodQuantity"`
	PickupLocation  *string    `json:"pickupLocation"`
	ExpiredDate     *time.Time `json:"expiredDate"`
	AdditionalNotes *string    `json:"additionalNotes"`
	Donator         *Donator   `json:"donator"`
}

// Apply はパッチの非nilフィールドをfoodに適用する。
func (p *FoodPatch) Apply(food *Food) {
	if p.FoodName != nil {
		food.FoodName = *p.FoodName
	}
	if p.FoodImage != nil {
		food.FoodImage = *p.FoodImage
	}
	if p.FoodQuantity != nil {
		food.FoodQuantity = *p.FoodQuantity
	}
	if p.PickupLocation != nil {
		food.PickupLocation = *p.PickupLocation
	}
	if p.ExpiredDate != nil {
		food.ExpiredDate = *p.ExpiredDate
	}
	if p.AdditionalNotes != nil {
		food.AdditionalNotes = *p.AdditionalNotes
	}
	if p.Donator != nil {
		food.Donator = *p.Donator
	}
}
