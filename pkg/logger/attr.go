package logger

import (
	"log/slog"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records err under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// ViewerID records the identifier of the user a response is rendered for.
func ViewerID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("viewer_id", id)
}

// NotificationID records a notification identifier under the key "notification_id".
func NotificationID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("notification_id", id)
}

// Count records a quantity under the given key.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// Driver records a storage or cache backend name.
func Driver(name string) slog.Attr {
	return slog.String("driver", name)
}

func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}
