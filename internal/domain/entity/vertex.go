package entity

import "image"

// Vertex координата пикселя границы в системе кадра (начало в левом верхнем углу)
type Vertex struct {
	X int
	Y int
}

// Point возвращает вершину как image.Point
func (v Vertex) Point() image.Point {
	return image.Pt(v.X, v.Y)
}

// VertexBuffer упорядоченный набор вершин фиксированной ёмкости.
// Результат одного прохода алгоритма, перезаписывается целиком.
type VertexBuffer struct {
	vertices []Vertex
	count    int
}

// NewVertexBuffer создаёт пустой буфер ёмкостью capacity
func NewVertexBuffer(capacity int) *VertexBuffer {
	if capacity < 0 {
		capacity = 0
	}
	return &VertexBuffer{vertices: make([]Vertex, capacity)}
}

// Cap возвращает ёмкость буфера (MAX_VERTICES)
func (b *VertexBuffer) Cap() int {
	return len(b.vertices)
}

// Count возвращает число действительных вершин
func (b *VertexBuffer) Count() int {
	return b.count
}

// Full сообщает, заполнен ли буфер
func (b *VertexBuffer) Full() bool {
	return b.count == len(b.vertices)
}

// Vertices возвращает действительные вершины без копирования
func (b *VertexBuffer) Vertices() []Vertex {
	return b.vertices[:b.count]
}

// At возвращает i-ю вершину
func (b *VertexBuffer) At(i int) Vertex {
	return b.vertices[i]
}

// Reset помечает буфер пустым, не освобождая память
func (b *VertexBuffer) Reset() {
	b.count = 0
}

// Push добавляет вершину; возвращает false, если буфер заполнен
func (b *VertexBuffer) Push(v Vertex) bool {
	if b.count >= len(b.vertices) {
		return false
	}
	b.vertices[b.count] = v
	b.count++
	return true
}
