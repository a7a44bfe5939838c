package port

// Platform сведения о возможностях платформы
type Platform interface {
	// SupportsConcurrency сообщает, можно ли запускать фоновый обработчик
	SupportsConcurrency() bool
}

// PlatformFunc адаптер функции к Platform
type PlatformFunc func() bool

// SupportsConcurrency вызывает f
func (f PlatformFunc) SupportsConcurrency() bool {
	return f()
}
