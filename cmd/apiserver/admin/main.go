package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ironmind/internal/config"
	"ironmind/internal/exercises"
	"ironmind/internal/models"
	"ironmind/internal/storage"
)

func usage() {
	fmt.Println("使用方法:")
	fmt.Println("  ./admin show-user <userID>      - 显示用户信息")
	fmt.Println("  ./admin list-friends <userID>   - 列出用户的好友")
	fmt.Println("  ./admin list-pending <userID>   - 列出等待用户处理的好友请求")
	fmt.Println("  ./admin catalog-stats [path]    - 显示动作库统计")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(os.Getenv("IRONMIND_CONFIG"))
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}

	// 动作库统计不需要数据库
	if os.Args[1] == "catalog-stats" {
		path := cfg.Catalog.ExercisesPath
		if len(os.Args) > 2 {
			path = os.Args[2]
		}
		catalogStats(path)
		return
	}

	if len(os.Args) < 3 {
		usage()
		os.Exit(1)
	}
	userID, err := storage.ParseID(os.Args[2])
	if err != nil {
		log.Fatalf("无效的用户ID: %v", err)
	}

	db := openDB(cfg.Database)
	ctx := context.Background()

	switch os.Args[1] {
	case "show-user":
		showUser(ctx, storage.NewGormUserRepository(db), userID)
	case "list-friends":
		listRelationships(ctx, db, userID, false)
	case "list-pending":
		listRelationships(ctx, db, userID, true)
	default:
		usage()
		log.Fatalf("未知命令: %s", os.Args[1])
	}
}

// openDB 直接通过 lib/pq 打开 postgres 连接，管理工具不走连接池配置。
func openDB(cfg config.DatabaseConfig) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%d user=%s dbname=%s password=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.DBName, cfg.Password, cfg.SSLMode)
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{Logger: newLogger})
	if err != nil {
		log.Fatalf("Failed to create GORM instance: %v", err)
	}
	return db
}

func showUser(ctx context.Context, repo storage.UserRepository, userID uint) {
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		log.Fatalf("查找用户失败: %v", err)
	}

	fmt.Printf("用户 %s 信息:\n", user.IDString())
	fmt.Println("--------------------------------------")
	fmt.Printf("名字: %s\n", user.Name)
	fmt.Printf("邮箱: %s\n", user.Email)
	fmt.Printf("好友码: %s\n", user.FriendCodeValue())
	fmt.Printf("训练频率: %s, 经验: %s\n", user.WorkoutVolume, user.ExperienceLevel)
	fmt.Printf("目标: %v\n", user.Goals)
	fmt.Printf("注册时间: %s\n", user.CreatedAt.Format("2006-01-02 15:04:05"))
}

func listRelationships(ctx context.Context, db *gorm.DB, userID uint, pending bool) {
	repo := storage.NewGormRelationshipRepository(db)
	var (
		rels []models.Relationship
		err  error
	)
	if pending {
		rels, err = repo.ListPendingIncoming(ctx, userID)
	} else {
		rels, err = repo.ListAccepted(ctx, userID)
	}
	if err != nil {
		log.Fatalf("查询关系失败: %v", err)
	}

	ids := make([]uint, 0, len(rels))
	for i := range rels {
		ids = append(ids, rels[i].OtherUser(userID))
	}
	infos, err := storage.NewGormUserRepository(db).GetMultipleBasicInfoByIDs(ctx, ids)
	if err != nil {
		log.Fatalf("查询用户失败: %v", err)
	}
	names := make(map[uint]string, len(infos))
	for _, info := range infos {
		names[info.ID] = info.Name
	}

	fmt.Printf("用户 %d 的记录 (%d 条):\n", userID, len(rels))
	fmt.Println("--------------------------------------")
	for i, rel := range rels {
		other := rel.OtherUser(userID)
		fmt.Printf("#%d 用户ID: %d, 名字: %s, 状态: %s, 更新时间: %s\n",
			i+1, other, names[other], rel.Status, rel.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
}

func catalogStats(path string) {
	catalog, err := exercises.Load(path)
	if err != nil {
		log.Fatalf("加载动作库失败: %v", err)
	}
	stats, err := catalog.Stats()
	if err != nil {
		log.Fatalf("统计失败: %v", err)
	}

	fmt.Printf("动作总数: %d\n", stats.TotalExercises)
	fmt.Println("--------------------------------------")
	printCounts("类别", stats.Categories)
	printCounts("器械", stats.EquipmentTypes)
	printCounts("主要肌群", stats.PrimaryMuscleDistribution)
}

func printCounts(title string, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Printf("%s:\n", title)
	for _, k := range keys {
		fmt.Printf("  %-20s %d\n", k, counts[k])
	}
}
