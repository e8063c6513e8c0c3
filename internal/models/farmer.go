package models

type FarmerRecord struct {
	ID          int    `json:"id"`
	FarmerName  string `json:"farmer_name"`
	NationalID  string `json:"national_id"`
	Age         string `json:"age"`
	Gender      string `json:"gender"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	FarmingType string `json:"farming_type"`
}

type FarmerRequest struct {
	FarmerName  string `json:"farmer_name"`
	NationalID  string `json:"national_id"`
	Age         string `json:"age"`
	Gender      string `json:"gender"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	FarmingType string `json:"farming_type"`
}

type FarmingType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type FarmingTypeRequest struct {
	Name string `json:"name"`
}

var DefaultFarmingTypes = []string{
	"Organic Farming",
	"Vegetable Farming",
	"Fruit Farming",
	"Grain Farming",
	"Dairy Farming",
}
