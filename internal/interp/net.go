package interp

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"sync"
	"time"
)

// wireValue is the JSON shape of one tuple element on the wire.
type wireValue struct {
	T string `json:"t"`
	V any    `json:"v"`
}

type wireFrame struct {
	Op     string      `json:"op"`
	Values []wireValue `json:"values"`
}

// networkEndpoint attaches a Channel to a TCP connection: a listener that
// accepts exactly one peer, or a connector that reconnects with a 1-second
// backoff on failure.
type networkEndpoint struct {
	conn net.Conn
	mu   sync.Mutex
}

// NetworkBinding tells the preamble that the local process plays one role
// (listener or connector) for the channel declared under a given endpoint
// id, and at what address. Populated from pkg/minipar's ChannelConfig.
type NetworkBinding struct {
	Addr   string
	Listen bool // true to accept a connection, false to dial out
}

// ListenChannel starts a listener on addr and returns once the (single)
// peer connects, wiring received frames into ch.
func ListenChannel(addr string, ch *Channel) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	conn, err := ln.Accept()
	if err != nil {
		ln.Close()
		return err
	}
	ln.Close()
	ep := &networkEndpoint{conn: conn}
	ch.network = ep
	go ep.readLoop(ch)
	return nil
}

// ConnectChannel dials addr, reconnecting with a 1-second backoff on
// failure, wiring received frames into ch.
func ConnectChannel(addr string, ch *Channel) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		go func() {
			for {
				time.Sleep(time.Second)
				conn, err := net.Dial("tcp", addr)
				if err == nil {
					ep := &networkEndpoint{conn: conn}
					ch.network = ep
					go ep.readLoop(ch)
					return
				}
			}
		}()
		return nil
	}
	ep := &networkEndpoint{conn: conn}
	ch.network = ep
	go ep.readLoop(ch)
	return nil
}

func (ep *networkEndpoint) sendOut(values Tuple) {
	frame := wireFrame{Op: "send"}
	for _, v := range values {
		frame.Values = append(frame.Values, toWireValue(v))
	}
	payload, err := json.Marshal(frame)
	if err != nil {
		return
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))

	ep.mu.Lock()
	defer ep.mu.Unlock()
	ep.conn.Write(lenBuf[:])
	ep.conn.Write(payload)
}

func (ep *networkEndpoint) readLoop(ch *Channel) {
	for {
		var lenBuf [4]byte
		if _, err := io.ReadFull(ep.conn, lenBuf[:]); err != nil {
			return
		}
		size := binary.BigEndian.Uint32(lenBuf[:])
		payload := make([]byte, size)
		if _, err := io.ReadFull(ep.conn, payload); err != nil {
			return
		}
		var frame wireFrame
		if err := json.Unmarshal(payload, &frame); err != nil {
			continue
		}
		tuple := make(Tuple, len(frame.Values))
		for i, wv := range frame.Values {
			tuple[i] = fromWireValue(wv)
		}
		ch.enqueueFromNetwork(tuple)
	}
}

func toWireValue(v Value) wireValue {
	switch n := v.(type) {
	case *Int:
		return wireValue{T: "INT", V: n.Value}
	case *Float:
		return wireValue{T: "FLOAT", V: n.Value}
	case *String:
		return wireValue{T: "STRING", V: n.Value}
	case *Bool:
		return wireValue{T: "BOOL", V: n.Value}
	default:
		return wireValue{T: "OBJECT", V: v.Inspect()}
	}
}

func fromWireValue(wv wireValue) Value {
	switch wv.T {
	case "INT":
		if f, ok := wv.V.(float64); ok {
			return &Int{Value: int64(f)}
		}
		return &Int{}
	case "FLOAT":
		if f, ok := wv.V.(float64); ok {
			return &Float{Value: f}
		}
		return &Float{}
	case "STRING":
		if s, ok := wv.V.(string); ok {
			return &String{Value: s}
		}
		return &String{}
	case "BOOL":
		if b, ok := wv.V.(bool); ok {
			return &Bool{Value: b}
		}
		return &Bool{}
	default:
		return &String{Value: fmt.Sprint(wv.V)}
	}
}
