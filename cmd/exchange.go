package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/doxxx/coap-cli/message"
	"github.com/doxxx/coap-cli/message/codes"
	coapNet "github.com/doxxx/coap-cli/net"
	"github.com/doxxx/coap-cli/udp/client"
)

// runExchange performs one request/response exchange against the resource
// named by rawURL and prints the outcome.
func runExchange(ctx context.Context, rawURL string, code codes.Code, payload []byte, contentFormat *message.MediaType, accept []string, decode bool) error {
	tgt, err := parseTarget(rawURL)
	if err != nil {
		return err
	}
	acceptFormats, err := parseContentFormats(accept)
	if err != nil {
		return err
	}
	req, err := buildRequest(code, tgt, payload, contentFormat, acceptFormats)
	if err != nil {
		return err
	}

	conn, err := coapNet.DialUDP("udp", tgt.hostport)
	if err != nil {
		return fmt.Errorf("cannot dial %v: %w", tgt.hostport, err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Warn("cannot close connection", slog.String("error", err.Error()))
		}
	}()

	cc := client.NewConn(conn, &client.Config{
		Errors: func(err error) {
			logger.Debug("exchange", slog.String("error", err.Error()))
		},
		TransmissionAcknowledgeTimeout:      timeout,
		TransmissionAcknowledgeRandomFactor: envCfg.AckRandomFactor,
		TransmissionMaxRetransmit:           envCfg.MaxRetransmit,
		TransmissionMaxTransmitWait:         envCfg.MaxTransmitWait,
		TransmissionNStart:                  envCfg.NStart,
		MaxMessageSize:                      uint32(bufSize),
	})

	fmt.Fprintf(os.Stderr, "%v %v\n", code, rawURL)
	logger.Debug("sending request",
		slog.String("target", tgt.hostport),
		slog.String("request", req.String()),
	)

	resp, err := cc.Do(ctx, req)
	if err != nil {
		return err
	}
	logger.Debug("received response", slog.String("response", resp.String()))
	return printResponse(resp, decode)
}
