package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestReadIDParam(t *testing.T) {
	app := newBaseApplication(t, nil)

	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{value: "12", want: 12},
		{value: "0", wantErr: true},
		{value: "-3", wantErr: true},
		{value: "abc", wantErr: true},
		{value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			ctx := context.WithValue(r.Context(), httprouter.ParamsKey, httprouter.Params{{Key: "id", Value: tt.value}})

			got, err := app.readIDParam(r.WithContext(ctx), "id")
			assert.Equal(t, tt.wantErr, err != nil)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadLimitOffsetParams(t *testing.T) {
	app := newBaseApplication(t, nil)

	tests := []struct {
		query      string
		wantLimit  int
		wantOffset int
		wantErr    string
	}{
		{query: ""},
		{query: "limit=5&offset=10", wantLimit: 5, wantOffset: 10},
		{query: "limit=five", wantErr: "invalid limit parameter"},
		{query: "offset=ten", wantErr: "invalid offset parameter"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			qs, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)

			limit, offset, err := app.readLimitOffsetParams(qs)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestReadStringParam(t *testing.T) {
	app := newBaseApplication(t, nil)

	qs := url.Values{"title": []string{"react"}}
	assert.Equal(t, "react", app.readStringParam(qs, "title", ""))
	assert.Equal(t, "fallback", app.readStringParam(qs, "author", "fallback"))
}

func TestParseJSON(t *testing.T) {
	app := newBaseApplication(t, nil)

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: `{"comment": "hi"}`},
		{name: "empty body", body: ``, wantErr: "request body must not be empty"},
		{name: "bad syntax", body: `{"comment": }`, wantErr: "request body contains badly-formed JSON (at character"},
		{name: "truncated", body: `{"comment": "hi"`, wantErr: "request body contains badly-formed JSON"},
		{name: "wrong type", body: `{"comment": 5}`, wantErr: `request body contains an invalid value for the "comment" field`},
		{name: "unknown field", body: `{"text": "hi"}`, wantErr: `request body contains unknown field "text"`},
		{name: "two values", body: `{"comment": "a"}{"comment": "b"}`, wantErr: "request body must only contain a single JSON value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var dst addCommentRequest
			err := app.parseJSON(w, r, &dst)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "hi", dst.Comment)
		})
	}
}
