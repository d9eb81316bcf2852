package output

import (
	"encoding/json"
	"io"

	"github.com/CodMac/reflect-solver/model"
)

type JSONLWriter struct {
	encoder *json.Encoder
}

func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{encoder: json.NewEncoder(w)}
}

func (w *JSONLWriter) Write(v interface{}) error { return w.encoder.Encode(v) }

// WriteResolutions 逐行写出解析结果，返回写出条数
func WriteResolutions(w io.Writer, resolutions []*model.Resolution) (int, error) {
	writer := NewJSONLWriter(w)
	count := 0
	for _, res := range resolutions {
		if res == nil {
			continue
		}
		if err := writer.Write(res); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
