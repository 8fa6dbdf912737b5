package types

// Log action names injected through the LogCtx wrapper.
const (
	ActionStoreQueryFailed = "store_query_failed"

	ActionRabbitMQConnected       = "rabbitmq_connected"
	ActionRabbitConnectionClosing = "rabbitmq_connection_closing"
	ActionRabbitConnectionClosed  = "rabbitmq_connection_closed"
	ActionRabbitReconnected       = "rabbitmq_reconnected"
)
