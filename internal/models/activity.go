package models

import "time"

type ActivityEntry struct {
	ID         int       `json:"id"`
	EntityType string    `json:"entity_type"`
	EntityID   int       `json:"entity_id"`
	Action     string    `json:"action"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"created_at"`
}

type EntityType string

const (
	EntityUser        EntityType = "user"
	EntityProduct     EntityType = "product"
	EntityFarmer      EntityType = "farmer"
	EntityFarmingType EntityType = "farming_type"
)

type ActivityAction string

const (
	ActionUserSignedUp       ActivityAction = "User Signed Up"
	ActionProductAdded       ActivityAction = "Product Added"
	ActionProductToggled     ActivityAction = "Product Availability Changed"
	ActionFarmerRegistered   ActivityAction = "Farmer Registered"
	ActionFarmerUpdated      ActivityAction = "Farmer Updated"
	ActionFarmerDeleted      ActivityAction = "Farmer Deleted"
	ActionFarmingTypeCreated ActivityAction = "Farming Type Added"
)
