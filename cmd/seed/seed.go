// Command seed 建立預設分類、管理員帳號與示範資料；重複執行不會產生重複資料
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sync/atomic"

	"review-hub/internal/config"
	"review-hub/internal/database"
	"review-hub/internal/logger"
	"review-hub/internal/model"
	"review-hub/internal/service"
	"review-hub/internal/store"
	"review-hub/internal/worker"

	"github.com/brianvoe/gofakeit/v6"
)

// DemoPassword 為 -users 產生的示範帳號共用密碼
const DemoPassword = "password123"

var defaultCategories = []string{"Restaurant", "Book", "Product", "Store"}

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	runMigrationsFn = database.RunMigrations
	hashPassword    = service.HashPassword
	ensureCategory  = store.EnsureCategory
	ensureUser      = store.EnsureUser
	createItem      = store.CreateItemIfMissing
	exitFunc        = os.Exit
)

type options struct {
	items   int
	users   int
	workers int
	seed    int64

	adminEmail    string
	adminPassword string
}

func parseOptions(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.IntVar(&opts.items, "items", 20, "number of generated items")
	fs.IntVar(&opts.users, "users", 0, "number of generated demo users")
	fs.IntVar(&opts.workers, "workers", 4, "concurrent password hashing workers")
	fs.Int64Var(&opts.seed, "seed", 42, "faker seed; the same seed produces the same data")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.items < 0 || opts.users < 0 {
		return opts, errors.New("-items and -users must not be negative")
	}
	opts.adminEmail = os.Getenv("SEED_ADMIN_EMAIL")
	opts.adminPassword = os.Getenv("SEED_ADMIN_PASSWORD")
	return opts, nil
}

type seeder struct {
	db    database.DB
	faker *gofakeit.Faker
	opts  options
}

func (s *seeder) categories(ctx context.Context) ([]*model.Category, error) {
	cats := make([]*model.Category, 0, len(defaultCategories))
	for _, name := range defaultCategories {
		c, err := ensureCategory(ctx, s.db, name)
		if err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, nil
}

func (s *seeder) items(ctx context.Context, cats []*model.Category) (int, error) {
	batch := []*model.Item{{Name: "nike", Description: "great shoes", CategoryID: cats[0].ID}}
	for i := 0; i < s.opts.items; i++ {
		cat := cats[s.faker.Number(0, len(cats)-1)]
		batch = append(batch, &model.Item{
			Name:        fmt.Sprintf("%s %s", s.faker.ProductName(), s.faker.LetterN(4)),
			Description: s.faker.ProductDescription(),
			Image:       fmt.Sprintf("https://picsum.photos/seed/%s/600/400", s.faker.UUID()),
			CategoryID:  cat.ID,
		})
	}

	created := 0
	for _, it := range batch {
		ok, err := createItem(ctx, s.db, it)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}
	return created, nil
}

// users 在 worker pool 上做 bcrypt 與寫入；faker 只在呼叫端的 goroutine 使用
func (s *seeder) users(ctx context.Context) (int, error) {
	var accounts []model.User
	plain := map[string]string{}
	if s.opts.adminEmail != "" && s.opts.adminPassword != "" {
		accounts = append(accounts, model.User{FirstName: "Admin", LastName: "User", Email: s.opts.adminEmail, IsAdmin: true})
		plain[s.opts.adminEmail] = s.opts.adminPassword
	} else {
		logger.Warning("SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD not set; skipping admin account")
	}
	for i := 0; i < s.opts.users; i++ {
		accounts = append(accounts, model.User{
			FirstName: s.faker.FirstName(),
			LastName:  s.faker.LastName(),
			Email:     fmt.Sprintf("demo%d@example.com", i+1),
		})
	}

	var created int32
	pool := worker.NewPool(ctx, s.opts.workers)
	for i := range accounts {
		u := accounts[i]
		password, ok := plain[u.Email]
		if !ok {
			password = DemoPassword
		}
		pool.Submit(func(ctx context.Context) error {
			hash, err := hashPassword(password)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", u.Email, err)
			}
			u.PasswordHash = hash
			_, isNew, err := ensureUser(ctx, s.db, &u)
			if err != nil {
				return err
			}
			if isNew {
				atomic.AddInt32(&created, 1)
			}
			return nil
		})
	}
	err := pool.Wait()
	return int(atomic.LoadInt32(&created)), err
}

func run(args []string) error {
	opts, err := parseOptions(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}
	logger.Init(cfg.LogLevel, os.Stderr)

	ctx := context.Background()
	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	s := &seeder{db: db, faker: gofakeit.New(opts.seed), opts: opts}
	cats, err := s.categories(ctx)
	if err != nil {
		return err
	}
	logger.Infof("categories ready: %d", len(cats))

	n, err := s.items(ctx, cats)
	if err != nil {
		return err
	}
	logger.Infof("items created: %d", n)

	n, err = s.users(ctx)
	if err != nil {
		return err
	}
	logger.Infof("users created: %d", n)
	if opts.users > 0 {
		logger.Infof("demo users share the password %q", DemoPassword)
	}
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		logger.Error(err)
		exitFunc(1)
	}
}
