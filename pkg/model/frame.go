package model

import "time"

// Frame 是一次编码好的渲染更新, 由 stream.Sink 生成并缓存
type Frame struct {
	Key     SeriesKey
	Seq     uint64
	Mode    string
	Payload []byte
	Time    time.Time
}
