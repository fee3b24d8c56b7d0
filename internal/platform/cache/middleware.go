// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package cache

import (
	"bytes"
	"net/http"
)

// responseRecorder buffers a handler's output so a successful response can be
// stored before being replayed to the client.
type responseRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (recorder *responseRecorder) WriteHeader(status int) {
	recorder.status = status
	recorder.ResponseWriter.WriteHeader(status)
}

func (recorder *responseRecorder) Write(payload []byte) (int, error) {
	recorder.body.Write(payload)
	return recorder.ResponseWriter.Write(payload)
}

// Middleware caches successful GET responses under prefix, keyed by the raw
// query string. Only 200 responses are stored; everything else passes through.
//
// # Usage
//
//	router.With(cache.Middleware(store, "animes")).Get("/", handler.listAnimes)
func Middleware(store *Store, prefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.Method != http.MethodGet {
				next.ServeHTTP(writer, request)
				return
			}

			key := prefix + ":" + request.URL.RawQuery

			if payload, ok := store.Get(request.Context(), key); ok {
				writer.Header().Set("Content-Type", "application/json; charset=utf-8")
				writer.Header().Set("X-Cache", "HIT")
				writer.WriteHeader(http.StatusOK)
				_, _ = writer.Write(payload)
				return
			}

			recorder := &responseRecorder{ResponseWriter: writer, status: http.StatusOK}
			writer.Header().Set("X-Cache", "MISS")
			next.ServeHTTP(recorder, request)

			if recorder.status == http.StatusOK {
				store.Set(request.Context(), key, recorder.body.Bytes())
			}
		})
	}
}
