// SPDX-License-Identifier: MIT
package transport

import (
	applog "spectra/internal/log"
	"spectra/internal/plot"
)

// LoggingTransport writes a one-line summary of each payload to the log.
type LoggingTransport struct{}

// NewLoggingTransport creates a new LoggingTransport instance.
func NewLoggingTransport() *LoggingTransport {
	applog.Debugf("Transport: Using LoggingTransport")
	return &LoggingTransport{}
}

// Send logs the received data.
func (lt *LoggingTransport) Send(data any) error {
	switch v := data.(type) {
	case plot.Frame:
		applog.Infof("Transport: Frame %q at %d Hz, %d traces, %d samples",
			v.Scenario, v.SampleRate, len(v.Traces), v.Samples())
		for _, tr := range v.Traces {
			applog.Debugf("Transport:   %-13s %d samples", tr.Name, len(tr.Real))
		}
	default:
		applog.Infof("Transport: Received %T", data)
	}
	return nil
}

// Close is a no-op for LoggingTransport.
func (lt *LoggingTransport) Close() error {
	applog.Debugf("Transport: LoggingTransport closed")
	return nil
}

var _ Transport = (*LoggingTransport)(nil)
