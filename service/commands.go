package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bloghouse/app/repositories"
	"bloghouse/app/services"
	"bloghouse/app/sessions"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// HandleCommand runs a subcommand and returns its exit code.
func HandleCommand(args []string) int {
	if len(args) < 1 {
		PrintHelp()
		return 1
	}

	cmd, rest := args[0], args[1:]
	if cmd == "help" {
		PrintHelp()
		return 0
	}

	run, ok := commands[cmd]
	if !ok {
		fmt.Printf("Unknown command: %s\n\n", cmd)
		PrintHelp()
		return 1
	}

	flagArgs, positional := splitArgs(rest)
	cfg, err := LoadConfig(cmd, flagArgs, os.Stdout)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	return run(cfg, positional)
}

var commands = map[string]func(*Config, []string) int{
	"serve": func(cfg *Config, _ []string) int {
		if err := RunAppServer(cfg); err != nil {
			fmt.Printf("Server error: %v\n", err)
			return 1
		}
		return 0
	},
	"init":  func(cfg *Config, _ []string) int { return initDb(cfg) },
	"clean": func(cfg *Config, _ []string) int { return clean(cfg) },
	"backup": func(cfg *Config, _ []string) int {
		return backup(cfg)
	},
	"restore": func(cfg *Config, args []string) int {
		if len(args) < 1 {
			fmt.Println("Error: backup file path required for restore")
			return 1
		}
		return restore(cfg, args[0])
	},
	"promote": func(cfg *Config, args []string) int {
		if len(args) < 1 {
			fmt.Println("Error: email required for promote")
			return 1
		}
		return promote(cfg, args[0])
	},
	"users": func(cfg *Config, _ []string) int { return listUsers(cfg) },
}

// splitArgs separates leading flags from positional arguments so that
// "restore file.db --db x" and "restore --db x file.db" both work.
func splitArgs(args []string) (flags, positional []string) {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if len(a) > 1 && a[0] == '-' {
			flags = append(flags, a)
			if !strings.Contains(a, "=") && i+1 < len(args) && !isBoolFlag(a) {
				flags = append(flags, args[i+1])
				i++
			}
			continue
		}
		positional = append(positional, a)
	}
	return flags, positional
}

func isBoolFlag(a string) bool {
	switch a {
	case "-dev", "--dev", "-secure-cookies", "--secure-cookies":
		return true
	}
	return false
}

// PrintHelp prints help for the subcommands.
func PrintHelp() {
	helpText := `Usage: bloghouse <command> [options]

Commands:
  serve [flags]                   Run the blog service
  init                            Initialize a new empty database
  promote <email>                 Grant the admin role to an account
  users                           List registered accounts
  backup                          Create a backup of the database
  restore <file>                  Restore database from backup
  clean                           Remove the database and all sessions
  version                         Show version information
  help                            Display this help message

Flags (environment fallback in parentheses):
  --addr              listen address (BLOG_ADDR, default :5000)
  --db                sqlite database file (BLOG_DB_PATH, default data/blog.db)
  --sessions          badger session directory (BLOG_SESSION_DIR, default data/sessions)
  --backups           backup directory (BLOG_BACKUP_DIR, default data/backups)
  --session-ttl       session lifetime (BLOG_SESSION_TTL, default 24h)
  --log-level         log level (BLOG_LOG_LEVEL, default info)
  --dev               development logging (BLOG_DEV)
  --secure-cookies    mark session cookies Secure (BLOG_SECURE_COOKIES)
`
	fmt.Println(helpText)
}

func confirm(prompt string) bool {
	fmt.Print(prompt + " [y/N] ")
	var response string
	fmt.Scanln(&response)
	return response == "y" || response == "Y"
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// initDb initializes a new empty database and session store.
func initDb(cfg *Config) int {
	if exists(cfg.DBPath) {
		fmt.Println("Database already exists. Use 'clean' first if you want to reinitialize.")
		return 1
	}

	repo, err := repositories.NewRepository(cfg.DBPath)
	if err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		return 1
	}
	defer repo.Close()

	store, err := sessions.OpenBadgerStore(cfg.SessionDir, cfg.SessionTTL, zap.NewNop())
	if err != nil {
		fmt.Printf("Failed to initialize session store: %v\n", err)
		return 1
	}
	defer store.Close()

	fmt.Println("Database initialized successfully")
	return 0
}

// clean removes the database and the session store.
func clean(cfg *Config) int {
	if !exists(cfg.DBPath) && !exists(cfg.SessionDir) {
		fmt.Println("Database is already clean (does not exist)")
		return 0
	}

	if !confirm("Are you sure you want to clean the database? This cannot be undone.") {
		fmt.Println("Operation cancelled")
		return 1
	}

	for _, path := range []string{cfg.DBPath, cfg.DBPath + "-journal", cfg.SessionDir} {
		if err := os.RemoveAll(path); err != nil {
			fmt.Printf("Failed to clean database: %v\n", err)
			return 1
		}
	}
	fmt.Println("Database cleaned successfully")
	return 0
}

// backup writes a consistent copy of the database into the backup directory.
func backup(cfg *Config) int {
	if !exists(cfg.DBPath) {
		fmt.Println("No database exists to backup")
		return 1
	}

	if err := os.MkdirAll(cfg.BackupDir, 0755); err != nil {
		fmt.Printf("Failed to create backup directory: %v\n", err)
		return 1
	}

	repo, err := repositories.NewRepository(cfg.DBPath)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer repo.Close()

	backupFile := filepath.Join(cfg.BackupDir, fmt.Sprintf("blog_%d.db", time.Now().Unix()))
	if err := repo.Backup(context.Background(), backupFile); err != nil {
		fmt.Printf("Failed to backup database: %v\n", err)
		return 1
	}

	fmt.Printf("Database backed up successfully to %s\n", backupFile)
	return 0
}

// restore replaces the database with a backup file.
func restore(cfg *Config, backupFile string) int {
	fi, err := os.Stat(backupFile)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Backup file does not exist: %s\n", backupFile)
		return 1
	}
	if err != nil {
		fmt.Printf("Failed to stat backup file: %v\n", err)
		return 1
	}
	if fi.Size() == 0 {
		fmt.Printf("Backup file is empty: %s\n", backupFile)
		return 1
	}
	if err := checkBackup(backupFile); err != nil {
		fmt.Printf("Backup file is not a valid blog database: %v\n", err)
		return 1
	}

	if exists(cfg.DBPath) {
		if !confirm("Existing database found. Do you want to replace it?") {
			fmt.Println("Operation cancelled")
			return 1
		}
	}

	if err := copyFile(backupFile, cfg.DBPath); err != nil {
		fmt.Printf("Failed to restore database: %v\n", err)
		return 1
	}
	os.Remove(cfg.DBPath + "-journal")

	// Sessions carry user ids from the replaced database.
	if err := os.RemoveAll(cfg.SessionDir); err != nil {
		fmt.Printf("Failed to remove sessions: %v\n", err)
		return 1
	}

	repo, err := repositories.NewRepository(cfg.DBPath)
	if err != nil {
		fmt.Printf("Failed to open restored database: %v\n", err)
		return 1
	}
	repo.Close()

	fmt.Println("Database restored successfully")
	return 0
}

// checkBackup opens path read-only and makes sure the blog tables are there.
func checkBackup(path string) error {
	db, err := sqlx.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()

	for _, table := range []string{repositories.UsersTable, repositories.PostsTable, repositories.CommentsTable} {
		var n int
		if err := db.Get(&n, "SELECT COUNT(*) FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	tmp := dst + ".restore"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dst)
}

// promote grants the admin role to the account registered under email.
func promote(cfg *Config, email string) int {
	if !exists(cfg.DBPath) {
		fmt.Println("No database exists. Run 'init' first.")
		return 1
	}

	repo, err := repositories.NewRepository(cfg.DBPath)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer repo.Close()

	user, err := services.NewUserService(repo.Users).Promote(context.Background(), email)
	if errors.Is(err, repositories.ErrNotFound) {
		fmt.Printf("No account registered with email %s\n", email)
		return 1
	}
	if err != nil {
		fmt.Printf("Failed to promote user: %v\n", err)
		return 1
	}

	fmt.Printf("Granted admin role to %s (id %d)\n", user.Email, user.ID)
	return 0
}

// listUsers prints every account with its role.
func listUsers(cfg *Config) int {
	if !exists(cfg.DBPath) {
		fmt.Println("No database exists. Run 'init' first.")
		return 1
	}

	repo, err := repositories.NewRepository(cfg.DBPath)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer repo.Close()

	users, err := services.NewUserService(repo.Users).ListUsers(context.Background())
	if err != nil {
		fmt.Printf("Failed to list users: %v\n", err)
		return 1
	}
	if len(users) == 0 {
		fmt.Println("No registered users")
		return 0
	}
	for _, u := range users {
		fmt.Printf("%4d  %-7s %-30s %s\n", u.ID, u.Role, u.Email, u.Name)
	}
	return 0
}
