// Package parse builds documents from JSON text.
//
// The center is the Handler interface: a push-based event stream of
// one document's tokens. Walk drives a handler from raw text; the two
// handlers here assemble a dom tree (Parse) or merely track nesting
// depth (Check, Valid). Other packages can feed events from their own
// sources, such as a binary decoder emitting exact decimals through
// RawNumber.
package parse
