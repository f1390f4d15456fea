package model

import (
	"cmp"
	"slices"
	"strings"
)

// Label 是视图上的一个 name=value 标注, 用于区分同名视图
type Label struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
type Labels []Label

// LabelsFromMap 把配置里的 map 转成有序的 Labels
func LabelsFromMap(m map[string]string) Labels {
	if len(m) == 0 {
		return Labels{}
	}
	l := make(Labels, 0, len(m))
	for k, v := range m {
		l = append(l, Label{Name: k, Value: v})
	}
	slices.SortFunc(l, compareLabels)
	return l
}

func (l Labels) Sorted() Labels {
	sorted := slices.Clone(l)
	slices.SortFunc(sorted, compareLabels)
	return sorted
}

// 返回类似 "env=dev,panel=cpu" 的字符串
func (l Labels) String() string {
	parts := make([]string, 0, len(l))
	for _, label := range l.Sorted() {
		parts = append(parts, label.Name+"="+label.Value)
	}
	return strings.Join(parts, ",")
}

// 先按名字, 再按值
func compareLabels(a, b Label) int {
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.Value, b.Value)
}
