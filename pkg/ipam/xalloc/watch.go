package xalloc

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchCallback 地址池文件变更回调函数
// 当定义文件发生变更时调用，err 表示重载是否成功；
// 重载失败时 pools 为 nil，调用方应保留上一份有效集合
type WatchCallback func(pools map[string]*Allocator, err error)

// PoolWatcher 地址池定义文件监视器
// 监控定义文件变更并自动重建地址池集合
type PoolWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	callback WatchCallback
	debounce time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
	running  bool
	timer    *time.Timer // debounce 定时器，Stop() 时需要取消
}

// WatchOption 监视器配置选项
type WatchOption func(*watchOptions)

type watchOptions struct {
	debounce time.Duration
}

func defaultWatchOptions() *watchOptions {
	return &watchOptions{
		debounce: 100 * time.Millisecond, // 默认防抖时间
	}
}

// WithDebounce 设置防抖时间
// 在指定时间内的多次变更只触发一次重载
// 默认值为 100ms，适合大多数场景
func WithDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) {
		o.debounce = d
	}
}

// WatchPools 创建地址池定义文件监视器
//
// 监控定义文件变更并自动调用 LoadPools 重建地址池集合。
// 每次变更（含失败）都会调用 callback 通知调用方。
//
// 注意:
//   - path 必须能通过 LoadPools 的格式检测（.yaml/.yml/.json）
//   - 返回的 PoolWatcher 需要调用 Start() 开始监视，Stop() 停止监视
//
// 示例:
//
//	w, err := xalloc.WatchPools("/etc/ipam/pools.yaml", func(pools map[string]*xalloc.Allocator, err error) {
//	    if err != nil {
//	        log.Printf("reload failed: %v", err)
//	        return
//	    }
//	    store.Replace(pools)
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Stop()
//	w.StartAsync()
func WatchPools(path string, callback WatchCallback, opts ...WatchOption) (*PoolWatcher, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if _, err := detectFormat(path); err != nil {
		return nil, err
	}

	// 应用选项
	options := defaultWatchOptions()
	for _, opt := range opts {
		opt(options)
	}

	// 创建 fsnotify watcher
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("xalloc: failed to create watcher: %w", err)
	}

	// 监视定义文件所在目录（而非文件本身）
	// 因为编辑器保存文件时可能先删除再创建，直接监视文件会丢失事件
	dir := filepath.Dir(path)
	if err := fsWatcher.Add(dir); err != nil {
		closeErr := fsWatcher.Close()
		return nil, errors.Join(
			fmt.Errorf("xalloc: failed to watch directory %s: %w", dir, err),
			closeErr,
		)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &PoolWatcher{
		path:     path,
		watcher:  fsWatcher,
		callback: callback,
		debounce: options.debounce,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start 启动监视
// 此方法会阻塞，通常应在 goroutine 中调用
func (w *PoolWatcher) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	w.run()
}

// StartAsync 异步启动监视
// 在后台 goroutine 中运行，立即返回
// 解决与 Stop() 的竞态：先设置 running 标志再启动 goroutine
func (w *PoolWatcher) StartAsync() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	go w.run()
}

// Stop 停止监视
func (w *PoolWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	// 停止 debounce 定时器，防止 Stop 后仍触发回调
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}

	w.cancel()
	w.running = false
	return w.watcher.Close()
}

// run 运行监视循环
func (w *PoolWatcher) run() {
	filename := filepath.Base(w.path)

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event, filename)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.handleError(err)
		}
	}
}

// handleEvent 处理文件系统事件
func (w *PoolWatcher) handleEvent(event fsnotify.Event, filename string) {
	// 只处理目标定义文件的事件
	if filepath.Base(event.Name) != filename {
		return
	}

	// 处理可能表示文件更新的事件
	// - Write: 直接修改
	// - Create: 新建文件（部分编辑器）
	// - Rename: 原子写入模式（vim/emacs 写临时文件后 rename）
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	// 防抖处理：重置计时器
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}

	w.timer = time.AfterFunc(w.debounce, func() {
		// 检查 watcher 是否已停止
		select {
		case <-w.ctx.Done():
			return
		default:
		}

		pools, err := LoadPools(w.path)
		if w.callback != nil {
			w.callback(pools, err)
		}
	})
}

// handleError 处理 watcher 错误
func (w *PoolWatcher) handleError(err error) {
	if w.callback != nil {
		w.callback(nil, fmt.Errorf("xalloc: watch error: %w", err))
	}
}
