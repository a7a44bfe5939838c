package worker

import "sync/atomic"

const dirtyBit = 1 << 2

// tripleBuffer передаёт значения от одного писателя одному читателю без блокировок.
//
// Писатель заполняет back и публикует его обменом со средним слотом;
// читатель забирает средний слот, только если он помечен как свежий.
// Ни одна из сторон не видит слот, который в этот момент пишет другая.
type tripleBuffer[T any] struct {
	slots  [3]T
	back   int           // принадлежит писателю
	front  int           // принадлежит читателю
	middle atomic.Uint32 // индекс среднего слота и dirtyBit
}

func newTripleBuffer[T any](newSlot func() T) *tripleBuffer[T] {
	tb := &tripleBuffer[T]{back: 0, front: 1}
	for i := range tb.slots {
		tb.slots[i] = newSlot()
	}
	tb.middle.Store(2)
	return tb
}

// Back возвращает слот писателя. Вызывается только писателем.
func (tb *tripleBuffer[T]) Back() T {
	return tb.slots[tb.back]
}

// Publish делает слот писателя доступным читателю. Вызывается только писателем.
func (tb *tripleBuffer[T]) Publish() {
	prev := tb.middle.Swap(uint32(tb.back) | dirtyBit)
	tb.back = int(prev &^ dirtyBit)
}

// Front возвращает последний опубликованный слот. Вызывается только читателем.
func (tb *tripleBuffer[T]) Front() T {
	if tb.middle.Load()&dirtyBit != 0 {
		prev := tb.middle.Swap(uint32(tb.front))
		tb.front = int(prev &^ dirtyBit)
	}
	return tb.slots[tb.front]
}
