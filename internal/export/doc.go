// SPDX-License-Identifier: MIT

// Package export writes plotted traces to disk as WAV files so they can be
// inspected in an audio editor.
package export
