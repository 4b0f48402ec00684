package availability

import "errors"

// ErrCache возвращается при ошибках Redis или сериализации
var ErrCache = errors.New("availability.cache: cache error")
