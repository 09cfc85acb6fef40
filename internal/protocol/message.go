package protocol

import "strings"

// Inbound commands.
const (
	CmdChat        = "CHAT"
	CmdCreateRoom  = "CREATEROOM"
	CmdJoinRoom    = "JOINROOM"
	CmdLeaveRoom   = "LEAVEROOM"
	CmdChatRoom    = "CHATROOM"
	CmdGetRoomList = "GETROOMLIST"
	CmdReady       = "READY"
	CmdCancel      = "CANCEL"
)

// Outbound messages.
const (
	MsgConnected    = "CONNECTED"
	MsgDisconnected = "DISCONNECTED"
	MsgChat         = "CHAT"
	MsgJoinedRoom   = "JOINEDROOM"
	MsgJoinRoom     = "JOINROOM"
	MsgNoRoom       = "NOROOM"
	MsgRoomFull     = "ROOMFULL"
	MsgRoomExists   = "ROOMEXISTS"
	MsgLeftRoom     = "LEFTROOM"
	MsgChatRoom     = "CHATROOM"
	MsgRoomList     = "ROOMLIST"
	MsgPlayerReady  = "PLAYERREADY"
	MsgPlayerCancel = "PLAYERCANCEL"
)

const sep = ";"

// Message is one parsed inbound frame: the command name and everything after
// the first separator. Payloads such as chat text may themselves contain the
// separator, so any further splitting is up to the command.
type Message struct {
	Cmd  string
	Body string
}

func Parse(frame string) Message {
	cmd, body, _ := strings.Cut(frame, sep)
	return Message{Cmd: cmd, Body: body}
}

// Build assembles an outbound message from a command and its fields.
func Build(cmd string, fields ...string) []byte {
	if len(fields) == 0 {
		return []byte(cmd)
	}
	return []byte(cmd + sep + strings.Join(fields, sep))
}
