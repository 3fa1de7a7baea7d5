package logz

import (
	"go.uber.org/zap"
)

func Path(path string) zap.Field {
	return zap.String("path", path)
}

func Method(method string) zap.Field {
	return zap.String("method", method)
}

// Source is the URL or file a document was loaded from.
func Source(source string) zap.Field {
	return zap.String("source", source)
}

func Schema(name string) zap.Field {
	if name == "" {
		return zap.Skip()
	}
	return zap.String("schema", name)
}
