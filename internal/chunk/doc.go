// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package chunk parses one complete JSON event object from the broadcast
// chess feed and extracts the handful of fields the renderer needs.  It is
// not a general JSON parser: the grammar is reduced to exactly the shapes
// the feed sends, and anything outside them fails the whole parse.
//
// The parser never allocates.  String and number values come back as
// subslices of the caller's buffer, and the buffer is mutated in place to
// NUL-terminate them, so the buffer must not be reused or read elsewhere
// until the extracted views have been consumed.
//
// # Limitations
//
// Backslash escape sequences are not processed; the feed never emits them in
// the recognized fields, and an escaped quote inside a string terminates the
// string early.  Numbers are unsigned integers only.  Unrecognized keys with
// scalar values are skipped; unrecognized keys with object or array values
// fail the parse.
package chunk
