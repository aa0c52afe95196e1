package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"sunnah-steps/session"

	"golang.org/x/term"
)

const usage = `usage: client [-config path] <command> [args]

commands:
  login                      sign in with email and password
  signup                     create an account
  whoami                     show the signed-in user
  logout                     forget the stored token
  progress                   show reading progress
  bookmark <articleId>       toggle a bookmark
  read <articleId> <minutes> record a read
`

// readPassword is replaced in tests.
var readPassword = term.ReadPassword

func main() {
	configPath := flag.String("config", "client.toml", "path to the client TOML config")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*configPath, flag.Args(), os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(configPath string, args []string, in io.Reader, out io.Writer) error {
	cfg, err := session.LoadClientConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := session.OpenBoltStore(cfg.DataDir)
	if err != nil {
		return err
	}

	api := session.NewHTTPClient(cfg.BaseURL, nil)
	sess := session.New(api, store)
	defer sess.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sess.Start(ctx); err != nil {
		return err
	}

	reader := bufio.NewReader(in)
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "login":
		email, err := prompt(reader, out, "Email: ")
		if err != nil {
			return err
		}
		password, err := promptPassword(out)
		if err != nil {
			return err
		}
		if err := sess.Login(ctx, email, password); err != nil {
			return err
		}
		greet(sess, out)

	case "signup":
		name, err := prompt(reader, out, "Name: ")
		if err != nil {
			return err
		}
		email, err := prompt(reader, out, "Email: ")
		if err != nil {
			return err
		}
		password, err := promptPassword(out)
		if err != nil {
			return err
		}
		if err := sess.Signup(ctx, name, email, password); err != nil {
			return err
		}
		greet(sess, out)

	case "whoami":
		user := sess.User()
		if user == nil {
			return session.ErrNotAuthenticated
		}
		fmt.Fprintf(out, "%s <%s> (%s)\n", user.Name, user.Email, user.Role)

	case "logout":
		if err := sess.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(out, "Signed out.")

	case "progress":
		token, err := requireToken(sess)
		if err != nil {
			return err
		}
		progress, err := api.Progress(ctx, token)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Articles read: %d\nReading time: %d min\nStreak: %d day(s)\nBookmarks: %d\n",
			len(progress.ReadArticles), progress.TotalReadingTime, progress.Streak, len(progress.BookmarkedArticles))
		fmt.Fprintf(out, "Weekly articles: %d/%d\nWeekly minutes: %d/%d\n",
			progress.WeeklyGoals.ArticlesRead, progress.WeeklyGoals.ArticlesTarget,
			progress.WeeklyGoals.ReadingMinutes, progress.WeeklyGoals.ReadingTarget)

	case "bookmark":
		if len(rest) != 1 {
			return errors.New("usage: bookmark <articleId>")
		}
		token, err := requireToken(sess)
		if err != nil {
			return err
		}
		result, err := api.ToggleBookmark(ctx, token, rest[0])
		if err != nil {
			return err
		}
		if result.Bookmarked {
			fmt.Fprintln(out, "Bookmarked.")
		} else {
			fmt.Fprintln(out, "Bookmark removed.")
		}

	case "read":
		if len(rest) != 2 {
			return errors.New("usage: read <articleId> <minutes>")
		}
		minutes, err := strconv.Atoi(rest[1])
		if err != nil {
			return fmt.Errorf("invalid minutes %q", rest[1])
		}
		token, err := requireToken(sess)
		if err != nil {
			return err
		}
		progress, err := api.RecordRead(ctx, token, rest[0], minutes)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Recorded. Streak: %d day(s), total %d min\n", progress.Streak, progress.TotalReadingTime)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}

	return nil
}

func requireToken(sess *session.Session) (string, error) {
	if sess.State() != session.Authenticated {
		return "", session.ErrNotAuthenticated
	}
	return sess.Token(), nil
}

func greet(sess *session.Session, out io.Writer) {
	user := sess.User()
	fmt.Fprintf(out, "Welcome, %s!\n", user.Name)
	if sess.ShouldShowIntroduction() {
		fmt.Fprintln(out, "Start small: read one article a day and your streak will grow.")
		sess.DismissIntroduction()
	}
}

func prompt(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(out io.Writer) (string, error) {
	fmt.Fprint(out, "Password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
