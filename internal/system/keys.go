package system

// Linux input-event-codes.h
const (
	KeyEsc uint16 = 1
	KeyF4  uint16 = 62
	KeyF5  uint16 = 63
)
