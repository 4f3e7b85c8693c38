/*
Package nlcmp orders nested-list lines without parsing them. A line is a
single element

	Element := List | Number
	List    := '[' (Element (',' Element)*)? ']'
	Number  := [0-9]+

and two elements are ordered by these rules:

  - Two numbers compare by their digits, byte by byte. Numbers are not
    converted to integers, so "10" is less than "9".
  - Two lists compare element by element. When one list runs out of elements
    while all elements so far were equal, the shorter list is less.
  - A number compared with a list is first wrapped into a list of its own.
    E.g. 9 compares as [9] against [[8,7,6]], and [9] is greater.

The input of a whole run is a sequence of line pairs separated by blank lines.
Sum adds up the 1-based indices of the pairs whose left line is less than the
right line. For the canonical Sample the result is 13.

# Streaming comparison

Comparator never builds a tree. Most compared lines share long identical
prefixes, so it first skips the common prefix of both lines, comparing whole
blocks of bytes at a time (see Mismatch). Only the first differing byte pair
needs to be classified:

	left   right   verdict
	digit  digit   by byte value
	, [    ]       greater
	]      , [     less
	digit  , ]     greater
	, ]    digit   less
	digit  [       compare the number with the list's first item
	[      digit   compare the list's first item with the number

In the last two cases the list side may open several lists before its first
number. If that number equals the bare number, the list side must close the
same number of lists right away. Otherwise it has more elements and is the
greater one. When both sides agree again they are at equal depth and continue
with the next element, after consuming pairs of closing brackets.

The comparator stops at the first decisive byte and does not look at the rest
of the lines. It reports malformed input it runs into, but only Validate
catches all of it. Sum validates every line unless Sum.Lax is set.

# Reference

Package oracle holds a plain tree parser and comparator with the same
semantics. It defines what Comparator has to compute and package pairtest
uses it to check Comparator in tests.
*/
package nlcmp
