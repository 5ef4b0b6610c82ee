package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"hash"
	"io"
	"net/http"
)

const (
	// ReplayHeader carries the key a client reuses to make a POST replayable.
	ReplayHeader = "Idempotency-Key"
)

var _ http.ResponseWriter = replayWriter{}

// Replay returns a middleware.Adapter making a POST endpoint replayable:
// repeating a request under a previously seen key answers with the
// stored response instead of reaching the handler again.
// GET, DELETE, PUT, & PATCH are idempotent by definition and are
// rejected outright.
//
// Replay pulls a key (a UUID v4 string) from request headers
// to base the uniqueness of a POST request around.
//
// If a previous request has not used that key,
// Replay pairs all of the following values to the key:
// - the body of the request
// - the body of the resulting response
// - the status code of the resulting response
//
// If that key has been used before (and has not expired),
// Replay falls into one of these scenarios:
//
//   - if a status code has not been stored for that key,
//     Replay responds with 409 since the original request is still processing
//
//   - if the newly requested resource (the URI) does not match the original,
//     Replay responds with 422
//
//   - if the new request's body does not match the body of the original request's,
//     Replay responds with 422
//
//   - Replay writes the status code and body stored for the key
//
// cache and hasher can be nil.
// Replay will use an in-memory cache and sha256, accordingly.
//
// Replay implements the draft Idempotent HTTP Header Field specification:
// https://tools.ietf.org/id/draft-idempotency-header-01.html
func Replay(cache ReplayCacher, hasher func() hash.Hash) Adapter {
	if cache == nil {
		cache = NewReplayMap()
	}

	if hasher == nil {
		hasher = sha256.New
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}

			key := r.Header.Get(ReplayHeader)
			if key == "" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}

			h := hasher()
			teeBody := bytes.NewBuffer(nil)
			check := io.TeeReader(r.Body, teeBody)
			if _, err := io.Copy(h, check); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			r.Body = io.NopCloser(teeBody)
			sum := h.Sum(nil)

			rec, ok := cache.Get(r.Context(), key)
			if ok {
				if rec.Status == 0 {
					w.WriteHeader(http.StatusConflict)
					return
				}

				if rec.URI != r.URL.RequestURI() || !bytes.Equal(rec.Req, sum) {
					w.WriteHeader(http.StatusUnprocessableEntity)
					return
				}

				w.WriteHeader(rec.Status)
				w.Write(rec.Body.Bytes())
				return
			}

			rec = NewReplayRecord(r.URL.RequestURI(), sum)
			cache.Set(r.Context(), key, rec)

			rw := replayWriter{
				ctx: r.Context(),
				c:   cache,
				rec: &rec,
				k:   key,
				w:   w,
			}
			handler.ServeHTTP(rw, r)
		})
	}
}

// A ReplayRecord is data from an HTTP response
// that can be reused when another request
// matches the same replay key.
type ReplayRecord struct {
	Body   *bytes.Buffer
	Req    []byte
	Status int
	URI    string
}

// A replayRecordGob is an intermediate representation of
// a ReplayRecord for the purposes of gob encoding/decoding.
//
// replayRecordGob is necessary as long as pkg gob cannot decode/encode
// fields in a ReplayRecord (e.g., Body).
type replayRecordGob struct {
	B []byte
	R []byte
	S int
	U string
}

// NewReplayRecord constructs a ReplayRecord for the original request.
func NewReplayRecord(uri string, hashedBody []byte) ReplayRecord {
	return ReplayRecord{Body: bytes.NewBuffer(nil), URI: uri, Req: hashedBody}
}

// GobDecode unmarshals the gob-encoded []byte into fields of the *ReplayRecord.
//
// GobDecode implements gob.GobDecoder.
func (rec *ReplayRecord) GobDecode(b []byte) error {
	g := new(replayRecordGob)
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(g); err != nil {
		return err
	}

	rec.Body = bytes.NewBuffer(g.B)
	rec.Req, rec.Status, rec.URI = g.R, g.S, g.U
	return nil
}

// GobEncode marshals the fields of the ReplayRecord into a gob-encoded []byte.
//
// GobEncode implements gob.GobEncoder.
func (rec ReplayRecord) GobEncode() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	g := replayRecordGob{rec.Body.Bytes(), rec.Req, rec.Status, rec.URI}
	if err := gob.NewEncoder(buf).Encode(g); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// A replayWriter pairs a ReplayRecord with an http.ResponseWriter
// so both can be written to by an HTTP handler.
// Changes to the ReplayRecord in such a way are saved in the cache.
//
// A replayWriter implements http.ResponseWriter.
type replayWriter struct {
	ctx context.Context
	c   ReplayCacher
	rec *ReplayRecord
	k   string
	w   http.ResponseWriter
}

// Header returns the http.Header of the underlying http.ResponseWriter.
func (rw replayWriter) Header() http.Header { return rw.w.Header() }

// Write writes the bytes to all consumers the replayWriter is concerned with.
func (rw replayWriter) Write(b []byte) (int, error) {
	select {
	case <-rw.ctx.Done():
		return 0, nil
	default:
		if rw.rec.Status == 0 {
			rw.WriteHeader(http.StatusOK)
		}

		n, err := rw.w.Write(b)
		if err != nil {
			return n, err
		}

		if _, err = rw.rec.Body.Write(b); err != nil {
			return n, err
		}

		rw.c.Set(rw.ctx, rw.k, *rw.rec)
		return n, nil
	}
}

// WriteHeader copies the status code about to be written to the *ReplayRecord
// for later reuse before actually writing the status code.
func (rw replayWriter) WriteHeader(s int) {
	select {
	case <-rw.ctx.Done():
		return
	default:
		rw.w.WriteHeader(s)
		rw.rec.Status = s
		rw.c.Set(rw.ctx, rw.k, *rw.rec)
	}
}
