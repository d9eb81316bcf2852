package classpath

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/CodMac/reflect-solver/core"
	"github.com/CodMac/reflect-solver/model"
	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

const keyPrefixClass = "class:"

// BadgerStore 是持久化的已编译类索引，同时实现 core.ClassLoader。
//
// 键使用小写二进制名，与大小写不敏感的制品存储一致：同名不同大小写的两个类
// 只能保存一个，按另一种拼写加载时返回 LoadLinkageMismatch。
//
// Thread Safety: 可并发使用，BadgerDB 自身负责并发控制。
type BadgerStore struct {
	db     *badger.DB
	logger *slog.Logger
	closed atomic.Bool
}

// Open 打开 (或创建) dir 下的类索引
func Open(dir string, logger *slog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	return open(opts, logger)
}

// OpenInMemory 打开一个内存类索引，主要用于测试
func OpenInMemory(logger *slog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	return open(opts, logger)
}

func open(opts badger.Options, logger *slog.Logger) (*BadgerStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open class index %q", opts.Dir)
	}
	return &BadgerStore{db: db, logger: logger}, nil
}

func classKey(binaryName string) []byte {
	return []byte(keyPrefixClass + strings.ToLower(binaryName))
}

// Put 在单个事务中写入一批类
func (s *BadgerStore) Put(classes ...*model.ClassInfo) error {
	if s.closed.Load() {
		return errors.Wrap(core.ErrLoaderUnavailable, "class index closed")
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		for _, c := range classes {
			if c == nil || c.BinaryName == "" {
				return errors.New("class info without binary name")
			}
			raw, err := json.Marshal(c)
			if err != nil {
				return errors.Wrapf(err, "marshal %s", c.BinaryName)
			}
			if err := txn.Set(classKey(c.BinaryName), raw); err != nil {
				return errors.Wrapf(err, "store %s", c.BinaryName)
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "writing classes to badger")
	}

	s.logger.Debug("classes stored", slog.Int("count", len(classes)))
	return nil
}

func (s *BadgerStore) Load(name string) core.LoadResult {
	if s.closed.Load() {
		return core.Unavailable("class index closed")
	}

	var info model.ClassInfo
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(classKey(name))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &info)
		})
	})
	switch {
	case err == nil:
	case errors.Is(err, badger.ErrKeyNotFound):
		return core.NotFound(name)
	case errors.Is(err, badger.ErrDBClosed):
		return core.Unavailable(err.Error())
	default:
		// 损坏的记录按不存在处理，不影响其他查找
		s.logger.Warn("skipping unreadable class record", slog.String("name", name), slog.Any("error", err))
		return core.NotFound(name)
	}

	if info.BinaryName != name {
		return core.LinkageMismatch(strings.ReplaceAll(name, ".", "/"), strings.ReplaceAll(info.BinaryName, ".", "/"))
	}
	return core.Loaded(&info)
}

// Count 返回索引中的类数量
func (s *BadgerStore) Count() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefixClass)

		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(opts.Prefix); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "counting classes")
	}
	return count, nil
}

// Close 关闭底层数据库，之后的 Load 返回 LoadUnavailable
func (s *BadgerStore) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.db.Close()
}
