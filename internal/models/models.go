package models

import "time"

type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Password string `json:"-"`
}

// RecycleStat is a per-category aggregate as reported by storage, with a
// fractional percentage share of the customer's total recycled weight.
type RecycleStat struct {
	Category   string  `json:"category"`
	TotalKg    float64 `json:"totalKg"`
	Percentage float64 `json:"percentage"`
}

type MaterialType struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	PointsPerKg int    `json:"pointsPerKg"`
}

type WorkingTime struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type CenterMaterial struct {
	Name        string `json:"name"`
	Points      int    `json:"points"`
	IsHazardous bool   `json:"isHazardous"`
}

type Contact struct {
	Tel   string `json:"tel,omitempty"`
	Email string `json:"email,omitempty"`
	Other string `json:"other,omitempty"`
}

type Center struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Address      string           `json:"address"`
	ImageURL     string           `json:"imageUrl"`
	WorkingTimes []WorkingTime    `json:"workingTimes"`
	Materials    []CenterMaterial `json:"materials"`
	Contact      Contact          `json:"contact"`
}

type OrderItem struct {
	TypeName string `json:"typeName"`
	Quantity int    `json:"quantity"`
}

type Order struct {
	ID          int64       `json:"id"`
	CustomerID  int64       `json:"customerId"`
	CenterID    int64       `json:"centerId,omitempty"`
	Transport   string      `json:"transport"`
	Status      string      `json:"status"`
	Items       []OrderItem `json:"items"`
	Note        string      `json:"note"`
	ReceiveDate *time.Time  `json:"receiveDate,omitempty"`
	Schedule    string      `json:"schedule"`
	TotalWeight int         `json:"totalWeight"`
	Points      int         `json:"points,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// OrderDraft is the exact body posted to the order-creation endpoint.
// ReceiveDate stays nullable until the self-delivery semantics are settled.
type OrderDraft struct {
	CustomerID  int64       `json:"customerId"`
	CenterID    int64       `json:"centerId,omitempty"`
	Transport   string      `json:"transport"`
	Status      string      `json:"status"`
	Items       []OrderItem `json:"items"`
	Note        string      `json:"note"`
	ReceiveDate *time.Time  `json:"receiveDate,omitempty"`
	Schedule    string      `json:"schedule"`
}

type PointsBalance struct {
	ID       string `json:"-"`
	UserID   int64  `json:"-"`
	Current  int    `json:"current"`
	Redeemed int    `json:"redeemed"`
}

type Reward struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
	Cost     int    `json:"cost"`
	Stock    int    `json:"stock"`
}

type Redemption struct {
	ID          string `json:"-"`
	UserID      int64  `json:"-"`
	RewardID    int64  `json:"rewardId"`
	RewardName  string `json:"rewardName"`
	Cost        int    `json:"cost"`
	ProcessedAt string `json:"processedAt"`
}

type OrderDelayed struct {
	OrderID int64
	UserID  int64
}
