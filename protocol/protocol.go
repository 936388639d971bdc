package protocol

const (
	MsgInput   = "input"
	MsgWelcome = "welcome"
	MsgStart   = "start"
	MsgState   = "state"
	MsgError   = "error"
)
