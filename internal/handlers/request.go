// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"sharehub/internal/models"
	"sharehub/internal/service"
)

// DefaultMaxBodyBytes caps request bodies when no limit is configured.
const DefaultMaxBodyBytes int64 = 10 << 20

var (
	errUnsupportedBody = models.Validationf("content type must be application/json, multipart/form-data or application/x-www-form-urlencoded")
	errInvalidJSON     = models.Validationf("invalid JSON body")
	errInvalidForm     = models.Validationf("invalid form body")
	errKeywordsFormat  = models.Validationf("keywords must be a list of strings")
)

// formDecoder is a request payload that can also be filled from form
// values.
type formDecoder interface {
	fromForm(form url.Values) error
}

// decodeBody reads a JSON, urlencoded, or multipart body into dst. strict
// rejects unknown JSON fields. For multipart bodies the parsed form is
// returned so callers can read the files; callers release it with
// releaseForm. A request without a body leaves dst untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, maxBytes int64, dst formDecoder, strict bool) (*multipart.Form, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		return nil, decodeJSON(r.Body, dst, strict)

	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			return nil, formError(err)
		}
		return r.MultipartForm, dst.fromForm(r.MultipartForm.Value)

	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, formError(err)
		}
		return nil, dst.fromForm(r.PostForm)

	case "":
		if r.ContentLength == 0 {
			return nil, nil
		}
	}
	return nil, errUnsupportedBody
}

// decodeJSON decodes a single JSON value. An empty body is not an error.
func decodeJSON(body io.Reader, dst any, strict bool) error {
	dec := json.NewDecoder(body)
	if strict {
		dec.DisallowUnknownFields()
	}

	err := dec.Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var tooLarge *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError
	var appErr *models.Error
	switch {
	case errors.As(err, &tooLarge):
		return err
	case errors.As(err, &appErr):
		return err
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return models.Validationf("%s has an invalid type", typeErr.Field)
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		return models.Validationf("%s", strings.TrimPrefix(err.Error(), "json: "))
	}
	return errInvalidJSON
}

// formError keeps size-limit failures and turns the rest into a
// validation error.
func formError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	if errors.Is(err, multipart.ErrMessageTooLarge) {
		return &http.MaxBytesError{}
	}
	return errInvalidForm
}

// releaseForm removes temporary files kept for a multipart form.
func releaseForm(form *multipart.Form) {
	if form == nil {
		return
	}
	if err := form.RemoveAll(); err != nil {
		slog.Warn("remove multipart temp files failed", "error", err)
	}
}

// rejectFiles fails with an unknown field error when form carries any file
// part, for bodies that accept values only.
func rejectFiles(form *multipart.Form) error {
	if form == nil || len(form.File) == 0 {
		return nil
	}
	fields := make([]string, 0, len(form.File))
	for field := range form.File {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	return models.Validationf("unknown field %q", fields[0])
}

// readUploads loads every file sent under any of fields into memory, in
// request order.
func readUploads(form *multipart.Form, fields ...string) ([]service.Upload, error) {
	if form == nil {
		return nil, nil
	}

	var uploads []service.Upload
	for _, field := range fields {
		for _, fh := range form.File[field] {
			up, err := readUpload(fh)
			if err != nil {
				return nil, err
			}
			uploads = append(uploads, up)
		}
	}
	return uploads, nil
}

func readUpload(fh *multipart.FileHeader) (service.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return service.Upload{}, fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return service.Upload{}, fmt.Errorf("read upload %q: %w", fh.Filename, err)
	}
	return service.Upload{Filename: fh.Filename, Data: data}, nil
}

// singleUpload returns the first file sent under field, or nil.
func singleUpload(form *multipart.Form, field string) (*service.Upload, error) {
	uploads, err := readUploads(form, field)
	if err != nil || len(uploads) == 0 {
		return nil, err
	}
	return &uploads[0], nil
}

// formKeywords collects keywords sent as repeated "keywords" or
// "keywords[]" fields. present is false when neither was sent.
func formKeywords(form url.Values) (keywords []string, present bool, err error) {
	values := append(append([]string(nil), form["keywords"]...), form["keywords[]"]...)
	if _, ok := form["keywords"]; !ok {
		if _, ok := form["keywords[]"]; !ok {
			return nil, false, nil
		}
	}
	keywords, err = expandKeywords(values)
	return keywords, true, err
}

// expandKeywords accepts a single JSON array string in place of a list.
func expandKeywords(values []string) ([]string, error) {
	if len(values) != 1 || !strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		return values, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(values[0]), &list); err != nil {
		return nil, errKeywordsFormat
	}
	return list, nil
}

// keywordList decodes either a JSON array of strings or a single string.
// A string holding a JSON array is expanded.
type keywordList []string

func (k *keywordList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*k = nil
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errKeywordsFormat
		}
		list, err := expandKeywords([]string{s})
		if err != nil {
			return err
		}
		*k = list
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return errKeywordsFormat
	}
	*k = list
	return nil
}

// formString returns a pointer to the form value for key, or nil when the
// key was not sent.
func formString(form url.Values, key string) *string {
	if !form.Has(key) {
		return nil
	}
	v := form.Get(key)
	return &v
}
