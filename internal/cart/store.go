package cart

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// ==================== Store 购物车持久层 ====================

// Store 购物车持久化接口
// 客户端可按环境选择实现：本地文件、浏览器存储桥接等
type Store interface {
	Load() ([]Line, error)
	Save(lines []Line) error
}

// FileStore 基于本地 JSON 文件的购物车存储
type FileStore struct {
	path string
}

// NewFileStore 创建文件存储
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load 读取文件；文件不存在视为空购物车
func (s *FileStore) Load() ([]Line, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	if len(data) == 0 {
		return nil, nil
	}

	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Save 原子写入：先写临时文件再改名
func (s *FileStore) Save(lines []Line) error {
	data, err := json.MarshalIndent(lines, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".cart-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, s.path)
}
