package repository

import (
	"time"

	"main/store"
)

// Field readers tolerant of partially-written documents.

func stringField(doc store.Document, key string) string {
	if v, ok := doc.Fields[key].(string); ok {
		return v
	}
	return ""
}

func boolField(doc store.Document, key string) bool {
	if v, ok := doc.Fields[key].(bool); ok {
		return v
	}
	return false
}

func timeField(doc store.Document, key string) time.Time {
	if v, ok := doc.Fields[key].(time.Time); ok {
		return v.UTC()
	}
	return time.Time{}
}

func timePtrField(doc store.Document, key string) *time.Time {
	if v, ok := doc.Fields[key].(time.Time); ok {
		utc := v.UTC()
		return &utc
	}
	return nil
}
