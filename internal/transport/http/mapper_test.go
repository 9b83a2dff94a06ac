package http

import (
	"encoding/json"
	"testing"

	"github.com/vovakirdan/cipherchat-server/internal/core"
	"github.com/vovakirdan/cipherchat-server/internal/proto"
)

func mustInbound(t *testing.T, msgType string, data any) proto.Inbound {
	t.Helper()

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return proto.Inbound{Type: msgType, Data: payload}
}

func TestInboundValidation(t *testing.T) {
	cases := []struct {
		name     string
		inbound  proto.Inbound
		wantCode string
	}{
		{"join without room", mustInbound(t, proto.InboundTypeJoin, proto.JoinData{}), core.ErrCodeBadRequest},
		{"send without room", mustInbound(t, proto.InboundTypeSend, proto.SendData{Payload: "hi"}), core.ErrCodeBadRequest},
		{"send without key", mustInbound(t, proto.InboundTypeSend, proto.SendData{Room: "r", Payload: "hi"}), core.ErrCodeBadRequest},
		{"send with bad base64", mustInbound(t, proto.InboundTypeSend, proto.SendData{Room: "r", Payload: "!!", Encrypted: true}), core.ErrCodeBadRequest},
		{"receipt without timestamp", mustInbound(t, proto.InboundTypeReadReceipt, proto.ReadReceiptData{Room: "r"}), core.ErrCodeBadRequest},
		{"hello without user", mustInbound(t, proto.InboundTypeHello, proto.HelloData{}), core.ErrCodeAuth},
		{"unknown type", proto.Inbound{Type: "dance"}, "invalid_message"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, protoErr, err := inboundToCommand(tc.inbound)
			if err != nil {
				t.Fatalf("unexpected mapping error: %v", err)
			}
			if cmd != nil {
				t.Fatalf("expected no command, got %+v", cmd)
			}
			if protoErr == nil || protoErr.Code != tc.wantCode {
				t.Fatalf("expected %s, got %+v", tc.wantCode, protoErr)
			}
		})
	}
}

func TestInboundSendMapsKinds(t *testing.T) {
	inbound := mustInbound(t, proto.InboundTypeSend, proto.SendData{
		Room:      "general",
		Payload:   "aGVsbG8=", // "hello"
		PublicKey: "pem",
		Kind:      proto.KindFile,
		FileName:  "notes.txt",
	})

	cmd, protoErr, err := inboundToCommand(inbound)
	if err != nil || protoErr != nil {
		t.Fatalf("unexpected error: %v %+v", err, protoErr)
	}
	if cmd.Kind != core.CommandSendMessage || cmd.MsgKind != core.KindFile || cmd.FileName != "notes.txt" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if string(cmd.Payload) != "hello" {
		t.Fatalf("file payload not decoded: %q", cmd.Payload)
	}
}
