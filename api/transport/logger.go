package transport

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type logTripper struct {
	log  logrus.FieldLogger
	next http.RoundTripper
}

func Logger(log logrus.FieldLogger, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &logTripper{log: log, next: next}
}

func (t *logTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	log := t.log

	if rid := r.Header.Get(RequestIDHeader); rid != "" {
		log = log.WithField("req_id", rid)
	}

	log = log.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"host":   r.URL.Host,
	})

	log.Info("started")
	startTime := time.Now().UTC()

	w, err := t.next.RoundTrip(r)

	if err != nil {
		log.WithFields(logrus.Fields{
			"since":   time.Since(startTime).Nanoseconds(),
			"message": err,
		}).Info("failed")
		return w, err
	}

	log.WithFields(logrus.Fields{
		"statuscode": w.StatusCode,
		"bytes":      w.ContentLength,
		"since":      time.Since(startTime).Nanoseconds(),
	}).Info("completed")
	return w, err
}
