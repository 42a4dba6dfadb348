/*
 * MIT License
 *
 * Copyright (c) 2022-2025  Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewErrUnknownService(t *testing.T) {
	err := NewErrUnknownService("db")
	assert.ErrorIs(t, err, ErrUnknownService)
	assert.Contains(t, err.Error(), "db")
}

func TestNewErrDuplicateService(t *testing.T) {
	err := NewErrDuplicateService("db")
	assert.ErrorIs(t, err, ErrDuplicateService)
	assert.Contains(t, err.Error(), "db")
}

func TestNewErrInitFailure(t *testing.T) {
	cause := stderrors.New("boom")
	err := NewErrInitFailure(cause)
	assert.ErrorIs(t, err, ErrInitFailure)
	assert.ErrorIs(t, err, cause)
}

func TestNewErrProtocolViolation(t *testing.T) {
	err := NewErrProtocolViolation("handler %s mismatched", "h1")
	assert.ErrorIs(t, err, ErrProtocolViolation)
	assert.Contains(t, err.Error(), "h1")
}
