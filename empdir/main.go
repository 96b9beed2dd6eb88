package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"dual_key/common"
	"dual_key/empdir/directory"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const AppName = "empdir"

var Glog *slog.Logger

type CommandLineArgs struct {
	ID       string
	Email    string
	Name     string
	Title    string
	Database string
	Sources  []string
}

var args CommandLineArgs

var actions = []string{"add", "get", "remove", "status"}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <add|get|remove|status>\n", AppName)
	flag.PrintDefaults()
}

// errNotFound makes the process exit with 1 after printing "not found".
var errNotFound = errors.New("employee not found")

func main() {
	os.Exit(empdirMain())
}

// empdirMain returns the exit code, so that deferred closes run before os.Exit.
func empdirMain() int {
	flag.StringVarP(&args.ID, "id", "i", "", "Employee id")
	flag.StringVarP(&args.Email, "email", "e", "", "Employee email")
	flag.StringVarP(&args.Name, "name", "n", "", "Employee name (add only)")
	flag.StringVarP(&args.Title, "title", "t", "", "Employee title (add only)")
	flag.StringVar(&args.Database, "db", "", "Employee database, overrides directory.database")
	flag.StringArrayVarP(&args.Sources, "source", "s", nil, "Extra employee database to merge, can be repeated")
	flag.Usage = usage
	flag.Parse()

	v := viper.New()
	bootLog := common.SetupLogger(slog.LevelInfo)
	common.SetupConfigNameAndPaths(v, bootLog, AppName, "config")
	config, err := common.LoadConfig(v, AppName)
	if err != nil {
		panic(err)
	}
	Glog = common.SetupLogger(common.ParseLevel(config.Log.Level))

	if args.Database != "" {
		config.Directory.Database = args.Database
	}
	config.Directory.Sources = append(config.Directory.Sources, args.Sources...)

	if flag.NArg() != 1 || !slices.Contains(actions, flag.Arg(0)) {
		usage()
		return 2
	}

	ctx := context.Background()
	store, err := common.OpenEmployeeStore(config.Directory.Database)
	if err != nil {
		panic(err)
	}
	defer store.Close()

	var sources []*common.EmployeeStore
	for _, dsn := range config.Directory.Sources {
		source, err := common.OpenEmployeeStore(dsn)
		if err != nil {
			panic(err)
		}
		defer source.Close()
		sources = append(sources, source)
	}

	dir := directory.New(store, Glog)
	if _, err = dir.Load(ctx, sources...); err != nil {
		panic(err)
	}

	err = run(ctx, dir, flag.Arg(0))
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errNotFound):
		fmt.Println(err.Error())
		return 1
	case errors.Is(err, common.ErrInvalidKeyPairing) || errors.Is(err, common.ErrMalformedRecord):
		Glog.Error(err.Error())
		return 1
	default:
		panic(err)
	}
}

func run(ctx context.Context, dir *directory.Directory, action string) error {
	switch action {
	case "add":
		return dir.Add(ctx, common.Employee{
			ID:    args.ID,
			Email: args.Email,
			Name:  args.Name,
			Title: args.Title,
		})
	case "get":
		var e common.Employee
		var ok bool
		switch {
		case args.ID != "":
			e, ok = dir.ByID(args.ID)
		case args.Email != "":
			e, ok = dir.ByEmail(args.Email)
		default:
			return common.NewError(common.UCodeMalformedRecord, "get needs --id or --email", false)
		}
		if !ok {
			return errNotFound
		}
		fmt.Printf("%s\t%s\t%s\t%s\n", e.ID, e.Email, e.Name, e.Title)
		return nil
	case "remove":
		var removed bool
		var err error
		switch {
		case args.ID != "":
			removed, err = dir.RemoveByID(ctx, args.ID)
		case args.Email != "":
			removed, err = dir.RemoveByEmail(ctx, args.Email)
		default:
			return common.NewError(common.UCodeMalformedRecord, "remove needs --id or --email", false)
		}
		if err != nil {
			return err
		}
		if !removed {
			return errNotFound
		}
		return nil
	case "status":
		fmt.Printf("employees: %d\nfingerprint: %016x\n", dir.Len(), dir.Fingerprint())
		return nil
	default:
		return fmt.Errorf("unknown action %q", action)
	}
}
