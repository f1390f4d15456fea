package model

import (
	"fmt"
	"hash/fnv"
)

// SeriesKey 标识一个视图所拥有的实时序列
type SeriesKey struct {
	Name   string `json:"name"`
	Labels Labels `json:"labels,omitempty"`
}

// 返回类似 "cpu{env=dev,panel=cpu}" 的字符串
func (k *SeriesKey) String() string {
	return fmt.Sprintf("%s{%s}", k.Name, k.Labels.String())
}

func (k *SeriesKey) Fingerprint() uint64 {
	h := fnv.New64a()
	h.Write([]byte(k.String()))
	return h.Sum64()
}
