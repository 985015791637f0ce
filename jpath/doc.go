// Package jpath models path expressions over JSON documents.
//
// A path is a $-rooted sequence of legs: object members (.name, ."quoted
// name"), member wildcards (.*), array cells ([3], [last], [last-2]),
// array ranges ([2 to 7]), array wildcards ([*]) and recursive descent
// (** or ..). Paths only address values; evaluation lives with the
// document representations.
package jpath
