package event

const CustomerCreatedDestination string = "customer_created"
const CustomerUpdatedDestination string = "customer_updated"
const CustomerDeletedDestination string = "customer_deleted"

type CustomerCreatedMessage struct {
	CustomerID int64  `json:"customer_id"`
	FullName   string `json:"full_name"`
}

type CustomerUpdatedMessage struct {
	CustomerID int64 `json:"customer_id"`
}

type CustomerDeletedMessage struct {
	CustomerID int64 `json:"customer_id"`
}
