package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"funcapp/internal/metrics"
	"funcapp/internal/storage"
)

// ToDoInput 为新增待办的请求体；缺省或为 null 的字段保持为 nil。
type ToDoInput struct {
	Order     *float64
	Title     *string
	URL       *string
	Completed *bool
}

// DecodeToDo 将请求体解析为 ToDoInput。请求体必须是 JSON 对象；
// 字段不做严格类型校验：标量按目标列的语义宽松转换，仅无法写入对应列的值（对象、数组、非数字 order）才会失败。
func DecodeToDo(body []byte) (ToDoInput, error) {
	var in ToDoInput
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return in, parseError(errors.New("request body is empty"))
	}
	if trimmed[0] != '{' {
		return in, parseError(errors.New("request body must be a JSON object"))
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return in, parseError(err)
	}
	var err error
	if in.Order, err = numberField(obj, "order"); err != nil {
		return in, parseError(err)
	}
	if in.Title, err = textField(obj, "title"); err != nil {
		return in, parseError(err)
	}
	if in.URL, err = textField(obj, "url"); err != nil {
		return in, parseError(err)
	}
	if in.Completed, err = boolField(obj, "completed"); err != nil {
		return in, parseError(err)
	}
	return in, nil
}

func numberField(obj map[string]any, key string) (*float64, error) {
	switch v := obj[key].(type) {
	case nil:
		return nil, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
		return &f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("field %s: %q is not a number", key, v)
		}
		return &f, nil
	case bool:
		f := 0.0
		if v {
			f = 1
		}
		return &f, nil
	default:
		return nil, fmt.Errorf("field %s: unsupported value of type %T", key, v)
	}
}

func textField(obj map[string]any, key string) (*string, error) {
	switch v := obj[key].(type) {
	case nil:
		return nil, nil
	case string:
		return &v, nil
	case json.Number:
		s := v.String()
		return &s, nil
	case bool:
		s := strconv.FormatBool(v)
		return &s, nil
	default:
		return nil, fmt.Errorf("field %s: unsupported value of type %T", key, v)
	}
}

func boolField(obj map[string]any, key string) (*bool, error) {
	switch v := obj[key].(type) {
	case nil:
		return nil, nil
	case bool:
		return &v, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
		b := f != 0
		return &b, nil
	default:
		return nil, fmt.Errorf("field %s: unsupported value of type %T", key, v)
	}
}

// NewToDo 依据输入构造待办行：Id 始终由服务端生成，completed 缺省（含显式 null）为 false。
func NewToDo(in ToDoInput) (*storage.ToDo, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}
	row := &storage.ToDo{
		ID:    id.String(),
		Order: in.Order,
		Title: in.Title,
		URL:   in.URL,
	}
	if in.Completed != nil {
		row.Completed = *in.Completed
	}
	return row, nil
}

// TableSink 接收单行结构化记录。
type TableSink interface {
	Insert(ctx context.Context, row *storage.ToDo) error
}

// GormTable 将待办行写入 MySQL 中的目标表。
type GormTable struct {
	db    *gorm.DB
	table string
}

func NewGormTable(db *gorm.DB, table string) *GormTable {
	return &GormTable{db: db, table: table}
}

// Insert 写入一行；失败时返回 SinkWriteError。
func (t *GormTable) Insert(ctx context.Context, row *storage.ToDo) error {
	if row == nil || row.ID == "" {
		return sinkError(errors.New("todo row requires an Id"))
	}
	if err := t.insert(ctx, row).Error; err != nil {
		metrics.SinkErrors.WithLabelValues("table").Inc()
		return sinkError(err)
	}
	metrics.ToDoRowsInserted.Inc()
	return nil
}

func (t *GormTable) insert(ctx context.Context, row *storage.ToDo) *gorm.DB {
	return t.db.WithContext(ctx).Table(t.table).Create(row)
}

// ToDoService 串联解析、构造与写入三个步骤。
type ToDoService struct {
	table TableSink
}

func NewToDoService(table TableSink) *ToDoService { return &ToDoService{table: table} }

// Add 解析请求体并写入一行，返回已写入的记录。
func (s *ToDoService) Add(ctx context.Context, body []byte) (*storage.ToDo, error) {
	in, err := DecodeToDo(body)
	if err != nil {
		return nil, err
	}
	row, err := NewToDo(in)
	if err != nil {
		return nil, sinkError(err)
	}
	if err := s.table.Insert(ctx, row); err != nil {
		if KindOf(err) == "" {
			err = sinkError(err)
		}
		return nil, err
	}
	return row, nil
}
