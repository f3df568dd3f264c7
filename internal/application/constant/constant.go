package constant

// Ключи атрибутов slog
const (
	Error     = "error"
	RoomID    = "room_id"
	Party     = "party"
	Kind      = "kind"
	Subject   = "subject"
	Count     = "count"
	Location  = "location"
	Created   = "created"
	SDPType   = "sdp_type"
	Reaped    = "reaped"
	StaleFrom = "stale_from"
)
