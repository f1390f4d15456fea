package storage

import "mini-livechart/pkg/model"

// Store 缓存每个序列最近一次的渲染帧
type Store interface {
	Put(f *model.Frame) error

	Latest(k *model.SeriesKey) (model.Frame, error)

	Delete(k *model.SeriesKey) error

	Keys() []model.SeriesKey
}
