package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/carrental/carrental/internal/cli"
	"github.com/carrental/carrental/internal/common/config"
	"github.com/carrental/carrental/internal/common/logger"
	"github.com/carrental/carrental/internal/customer"
	"github.com/carrental/carrental/internal/rental"
	"github.com/carrental/carrental/internal/user"
	"github.com/carrental/carrental/internal/vehicle"
)

var (
	configPath = flag.String("config", "configs/carrental.json", "配置文件路径")
)

// 默认管理员，首次启动（用户集合为空）时写入。
const (
	defaultAdminUser     = "admin"
	defaultAdminPassword = "admin123"
)

func main() {
	flag.Parse()

	// 加载配置
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 初始化日志
	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.Path)
	if err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}

	// 初始化存储
	repos, err := buildRepos(cfg.Storage)
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}

	vehicleSvc := vehicle.NewService(repos.vehicles)
	customerSvc := customer.NewService(repos.customers)
	userSvc := user.NewService(repos.users)
	rentalSvc := rental.NewService(vehicleSvc, customerSvc, repos.records, log)

	ctx := context.Background()

	// 空库时写入示例车辆和默认管理员
	if n, err := vehicleSvc.SeedSampleFleet(ctx); err != nil {
		log.Fatalf("failed to seed vehicles: %v", err)
	} else if n > 0 {
		log.Infof("seeded %d sample vehicles", n)
	}
	if created, err := userSvc.SeedDefaultAdmin(ctx, defaultAdminUser, defaultAdminPassword); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	} else if created {
		log.Warnf("created default admin %q, please change the password", defaultAdminUser)
	}

	ctl := cli.NewMainController(cfg, log, cli.NewInput(os.Stdin),
		vehicleSvc, customerSvc, rentalSvc, userSvc)
	if err := ctl.Run(ctx); err != nil {
		log.Fatalf("carrental exited with error: %v", err)
	}
}

type repoSet struct {
	vehicles  vehicle.Repo
	customers customer.Repo
	records   rental.Repo
	users     user.Repo
}

// buildRepos 按配置组装存储后端：file（逐行文本文件）或 sqlite。
func buildRepos(cfg config.StorageConfig) (*repoSet, error) {
	switch cfg.Driver {
	case "sqlite":
		return buildGormRepos(cfg.SQLitePath)
	case "", "file":
		return buildFileRepos(cfg.DataDir)
	default:
		return nil, fmt.Errorf("unknown storage driver: %q", cfg.Driver)
	}
}

func buildFileRepos(dataDir string) (*repoSet, error) {
	vehicles, err := vehicle.NewFileRepo(filepath.Join(dataDir, "vehicles.txt"))
	if err != nil {
		return nil, err
	}
	customers, err := customer.NewFileRepo(filepath.Join(dataDir, "customers.txt"))
	if err != nil {
		return nil, err
	}
	// 记录文件只存实体 ID，加载时通过车辆/客户存储还原快照
	records, err := rental.NewFileRepo(filepath.Join(dataDir, "records.txt"), vehicles, customers)
	if err != nil {
		return nil, err
	}
	users, err := user.NewFileRepo(filepath.Join(dataDir, "users.txt"))
	if err != nil {
		return nil, err
	}
	return &repoSet{
		vehicles:  vehicles,
		customers: customers,
		records:   records,
		users:     users,
	}, nil
}

func buildGormRepos(path string) (*repoSet, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&vehicle.Vehicle{},
		&customer.Customer{},
		&rental.Record{},
		&user.User{},
	); err != nil {
		return nil, err
	}
	return &repoSet{
		vehicles:  vehicle.NewGormRepo(db),
		customers: customer.NewGormRepo(db),
		records:   rental.NewGormRepo(db),
		users:     user.NewGormRepo(db),
	}, nil
}
