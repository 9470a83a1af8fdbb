package orders

const (
	TopicOrderCreated       = "order.created"
	TopicOrderStatusChanged = "order.status.changed"
	TopicOrderNotification  = "order.notification"
)

// Partition key = order_id so events for one order stay ordered.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
