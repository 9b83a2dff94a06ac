package http

import (
	"encoding/base64"
	"encoding/json"

	"github.com/vovakirdan/cipherchat-server/internal/core"
	"github.com/vovakirdan/cipherchat-server/internal/proto"
)

func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeHello:
		var hello proto.HelloData
		if err := json.Unmarshal(inbound.Data, &hello); err != nil {
			return nil, nil, err
		}
		if hello.Protocol != 0 && hello.Protocol != proto.ProtocolVersion {
			return nil, &proto.Error{Code: "unsupported_version", Msg: "unsupported protocol version"}, nil
		}
		if hello.User == "" {
			return nil, &proto.Error{Code: core.ErrCodeAuth, Msg: "user id is required"}, nil
		}
		return &core.Command{
			Kind:      core.CommandHello,
			User:      hello.User,
			PublicKey: hello.PublicKey,
		}, nil, nil
	case proto.InboundTypeJoin, proto.InboundTypeLeave:
		var join proto.JoinData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		if join.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "room is required"}, nil
		}
		kind := core.CommandJoinRoom
		if inbound.Type == proto.InboundTypeLeave {
			kind = core.CommandLeaveRoom
		}
		return &core.Command{Kind: kind, Room: join.Room}, nil, nil
	case proto.InboundTypeSend:
		var send proto.SendData
		if err := json.Unmarshal(inbound.Data, &send); err != nil {
			return nil, nil, err
		}
		if send.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "room is required"}, nil
		}
		msgKind := core.KindText
		if send.Kind == proto.KindFile {
			msgKind = core.KindFile
		}

		// Text plaintext travels as UTF-8; file and pre-encrypted payloads
		// travel base64.
		payload := []byte(send.Payload)
		if send.Encrypted || msgKind == core.KindFile {
			decoded, err := base64.StdEncoding.DecodeString(send.Payload)
			if err != nil {
				return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "payload is not valid base64"}, nil
			}
			payload = decoded
		}
		if !send.Encrypted && send.PublicKey == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "recipient public key is required"}, nil
		}
		return &core.Command{
			Kind:      core.CommandSendMessage,
			Room:      send.Room,
			Payload:   payload,
			PublicKey: send.PublicKey,
			Encrypted: send.Encrypted,
			MsgKind:   msgKind,
			FileName:  send.FileName,
		}, nil, nil
	case proto.InboundTypeTyping, proto.InboundTypeStoppedTyping:
		var typing proto.TypingData
		if err := json.Unmarshal(inbound.Data, &typing); err != nil {
			return nil, nil, err
		}
		if typing.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "room is required"}, nil
		}
		kind := core.CommandTyping
		if inbound.Type == proto.InboundTypeStoppedTyping {
			kind = core.CommandStoppedTyping
		}
		return &core.Command{Kind: kind, Room: typing.Room}, nil, nil
	case proto.InboundTypeReadReceipt:
		var receipt proto.ReadReceiptData
		if err := json.Unmarshal(inbound.Data, &receipt); err != nil {
			return nil, nil, err
		}
		if receipt.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "room is required"}, nil
		}
		if receipt.Timestamp <= 0 {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "timestamp is required"}, nil
		}
		return &core.Command{
			Kind:      core.CommandReadReceipt,
			Room:      receipt.Room,
			Timestamp: receipt.Timestamp,
		}, nil, nil
	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}, nil
	}
}

func messageToProto(msg core.Message) proto.EventMessage {
	return proto.EventMessage{
		Room:       msg.Room,
		Sender:     msg.Sender.UserID,
		Synthetic:  msg.Sender.Synthetic,
		Ciphertext: base64.StdEncoding.EncodeToString(msg.Ciphertext),
		TS:         msg.Timestamp,
		Status:     msg.Status.String(),
		Kind:       msg.Kind.String(),
		FileName:   msg.FileName,
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventRoomMessage:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventNameMessage,
			Data:  messageToProto(event.Message),
		}
	case core.EventHistory:
		messages := make([]proto.EventMessage, 0, len(event.Messages))
		for _, msg := range event.Messages {
			messages = append(messages, messageToProto(msg))
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventNamePreviousMessages,
			Data: proto.EventHistory{
				Room:     event.Room,
				Messages: messages,
			},
		}
	case core.EventUserTyping:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventNameUserTyping,
			Data:  proto.EventTyping{Room: event.Room, User: event.User},
		}
	case core.EventUserStoppedTyping:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventNameUserStoppedTyping,
			Data:  proto.EventTyping{Room: event.Room, User: event.User},
		}
	case core.EventMessageRead:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventNameMessageRead,
			Data: proto.EventMessageRead{
				Room:      event.Room,
				User:      event.User,
				Timestamp: event.ReadTS,
			},
		}
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}
