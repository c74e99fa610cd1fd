// Command makgoractl is a terminal client for the Mak'gora voting platform.
// It talks to the backend directly, keeping its session in a local state
// file, and renders vote boards, odds, news and rankings as tables.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/usyj/makgora-client/internal/commentview"
	"github.com/usyj/makgora-client/internal/config"
	"github.com/usyj/makgora-client/internal/domain"
	"github.com/usyj/makgora-client/internal/platform/makgora"
	"github.com/usyj/makgora-client/internal/voteview"
)

const usage = `usage: makgoractl [-config config.toml] <command> [args]

commands:
  login <loginId>            sign in (password read from stdin)
  logout                     sign out and clear the session file
  whoami                     show the signed-in profile
  votes                      list open AI votes
  vote <id>                  show one vote with odds and comments
  betslip <id> <choiceId> <amount>   preview a wager
  bet <id> <choiceId> <amount>       place a wager
  cancel <id>                withdraw a wager
  my                         my votes and betting record
  surveys                    list survey votes
  survey <id>                show one survey vote
  pick <id> <optionId> <choiceId>    answer a survey vote
  news [category]            list articles
  ranking [points|winrate|streak]    show the leaderboard
  comments <voteId>          show a vote's discussion thread
`

func main() {
	configPath := flag.String("config", "config.toml", "path to configuration file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		// The CLI works fine on defaults when no config file exists.
		defaults := config.Defaults()
		cfg = &defaults
	}

	state, err := newStateFile(cfg.CTL.StatePath)
	if err != nil {
		fatal(err)
	}

	client := makgora.NewClient(
		cfg.Backend.BaseURL,
		cfg.Backend.Timeout.Duration,
		makgora.WithTokenSource(state),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := run(ctx, client, state, args[0], args[1:]); err != nil {
		fatal(err)
	}
}

func run(ctx context.Context, client *makgora.Client, state *stateFile, cmd string, args []string) error {
	switch cmd {
	case "login":
		return cmdLogin(ctx, client, state, args)
	case "logout":
		return cmdLogout(ctx, client, state)
	case "whoami":
		return cmdWhoami(ctx, client, state)
	case "votes":
		return cmdVotes(ctx, client)
	case "vote":
		return cmdVote(ctx, client, state, args)
	case "betslip":
		return cmdBetslip(ctx, client, args)
	case "bet":
		return cmdBet(ctx, client, args)
	case "cancel":
		return cmdCancel(ctx, client, args)
	case "my":
		return cmdMy(ctx, client)
	case "surveys":
		return cmdSurveys(ctx, client)
	case "survey":
		return cmdSurvey(ctx, client, state, args)
	case "pick":
		return cmdPick(ctx, client, args)
	case "news":
		return cmdNews(ctx, client, args)
	case "ranking":
		return cmdRanking(ctx, client, args)
	case "comments":
		return cmdComments(ctx, client, state, args)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "makgoractl: %v\n", err)
	os.Exit(1)
}

func parseID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", what, s)
	}
	return id, nil
}

func cmdLogin(ctx context.Context, client *makgora.Client, state *stateFile, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: login <loginId>")
	}

	fmt.Fprint(os.Stderr, "password: ")
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return fmt.Errorf("no password given")
	}
	password := strings.TrimSpace(scanner.Text())

	pair, err := client.Login(ctx, domain.LoginRequest{LoginID: args[0], Password: password})
	if err != nil {
		return err
	}
	if err := state.SignIn(pair); err != nil {
		return err
	}

	// The login response may omit the profile; fetch it for the cache.
	user, err := client.Me(ctx)
	if err == nil {
		_ = state.SetUser(user)
	} else if pair.User != nil {
		user = *pair.User
	}
	fmt.Printf("signed in as %s\n", user.Nickname)
	return nil
}

func cmdLogout(ctx context.Context, client *makgora.Client, state *stateFile) error {
	if !state.SignedIn() {
		fmt.Println("not signed in")
		return nil
	}
	// Best effort; the local session is cleared regardless.
	_ = client.Logout(ctx, state.User().ID)
	if err := state.Invalidate(ctx); err != nil {
		return err
	}
	fmt.Println("signed out")
	return nil
}

func cmdWhoami(ctx context.Context, client *makgora.Client, state *stateFile) error {
	if !state.SignedIn() {
		return fmt.Errorf("not signed in; run: makgoractl login <loginId>")
	}
	user, err := client.Me(ctx)
	if err != nil {
		return err
	}
	_ = state.SetUser(user)
	renderUser(user)
	return nil
}

func cmdVotes(ctx context.Context, client *makgora.Client) error {
	votes, err := client.ListVotes(ctx)
	if err != nil {
		return err
	}
	renderVotes(votes)
	return nil
}

func cmdVote(ctx context.Context, client *makgora.Client, state *stateFile, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: vote <id>")
	}
	voteID, err := parseID(args[0], "vote id")
	if err != nil {
		return err
	}

	vote, err := client.GetVoteDetail(ctx, voteID)
	if err != nil {
		return err
	}
	view := voteview.Build(vote)

	// Odds are optional; the backend serves them only for open AI votes.
	if quote, err := client.GetVoteOdds(ctx, voteID); err == nil {
		attachOdds(&view, quote)
	}
	renderVoteView(view)

	if len(vote.Comments) > 0 {
		fmt.Println()
		renderThread(commentview.Annotate(vote.Comments, state.User().ID))
	}
	return nil
}

// attachOdds copies quoted odds onto the matching choice rows.
func attachOdds(view *voteview.View, quote domain.OddsQuote) {
	byOption := make(map[int64]float64, len(quote.Odds))
	for _, item := range quote.Odds {
		byOption[item.OptionID] = item.Odds
	}
	for i, opt := range view.Options {
		if odds, ok := byOption[opt.OptionID]; ok {
			for j := range opt.Choices {
				view.Options[i].Choices[j].Odds = odds
			}
		}
	}
}

func cmdBetslip(ctx context.Context, client *makgora.Client, args []string) error {
	voteID, choiceID, amount, err := parseBetArgs(args, "betslip")
	if err != nil {
		return err
	}

	vote, err := client.GetVoteDetail(ctx, voteID)
	if err != nil {
		return err
	}
	quote, err := client.GetVoteOdds(ctx, voteID)
	if err != nil {
		return err
	}
	renderBetslip(voteview.BuildBetslip(vote, quote, choiceID, amount))
	return nil
}

func cmdBet(ctx context.Context, client *makgora.Client, args []string) error {
	voteID, choiceID, amount, err := parseBetArgs(args, "bet")
	if err != nil {
		return err
	}

	if _, err := client.Participate(ctx, voteID, domain.ParticipateRequest{
		ChoiceID: choiceID,
		Points:   amount,
	}); err != nil {
		return err
	}

	vote, err := client.GetVoteDetail(ctx, voteID)
	if err != nil {
		return err
	}
	fmt.Println(good("wager placed"))
	renderVoteView(voteview.Build(vote))
	return nil
}

func parseBetArgs(args []string, cmd string) (voteID, choiceID, amount int64, err error) {
	if len(args) != 3 {
		return 0, 0, 0, fmt.Errorf("usage: %s <voteId> <choiceId> <amount>", cmd)
	}
	if voteID, err = parseID(args[0], "vote id"); err != nil {
		return
	}
	if choiceID, err = parseID(args[1], "choice id"); err != nil {
		return
	}
	if amount, err = parseID(args[2], "amount"); err != nil {
		return
	}
	return
}

func cmdCancel(ctx context.Context, client *makgora.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: cancel <voteId>")
	}
	voteID, err := parseID(args[0], "vote id")
	if err != nil {
		return err
	}
	if err := client.CancelParticipation(ctx, voteID); err != nil {
		return err
	}
	fmt.Println("wager withdrawn")
	return nil
}

func cmdMy(ctx context.Context, client *makgora.Client) error {
	votes, err := client.MyVotes(ctx)
	if err != nil {
		return err
	}
	renderVotes(votes)

	stats, err := client.MyVoteStatistics(ctx)
	if err != nil {
		return err
	}
	fmt.Println()
	renderStatistics(stats)
	return nil
}

func cmdSurveys(ctx context.Context, client *makgora.Client) error {
	votes, err := client.ListNormalVotes(ctx)
	if err != nil {
		return err
	}
	renderVotes(votes)
	return nil
}

func cmdSurvey(ctx context.Context, client *makgora.Client, state *stateFile, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: survey <id>")
	}
	voteID, err := parseID(args[0], "vote id")
	if err != nil {
		return err
	}

	vote, err := client.GetNormalVote(ctx, voteID)
	if err != nil {
		return err
	}
	renderVoteView(voteview.Build(vote))

	if len(vote.Comments) > 0 {
		fmt.Println()
		renderThread(commentview.Annotate(vote.Comments, state.User().ID))
	}
	return nil
}

func cmdPick(ctx context.Context, client *makgora.Client, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: pick <voteId> <optionId> <choiceId>")
	}
	voteID, err := parseID(args[0], "vote id")
	if err != nil {
		return err
	}
	optionID, err := parseID(args[1], "option id")
	if err != nil {
		return err
	}
	choiceID, err := parseID(args[2], "choice id")
	if err != nil {
		return err
	}

	if _, err := client.ParticipateNormal(ctx, voteID, domain.NormalParticipateRequest{
		OptionID: optionID,
		ChoiceID: choiceID,
	}); err != nil {
		return err
	}
	fmt.Println(good("answer recorded"))
	return nil
}

func cmdNews(ctx context.Context, client *makgora.Client, args []string) error {
	category := ""
	if len(args) > 0 {
		category = args[0]
	}
	page, err := client.ListArticles(ctx, category, 0, 20)
	if err != nil {
		return err
	}
	renderArticles(page)
	return nil
}

func cmdRanking(ctx context.Context, client *makgora.Client, args []string) error {
	tab := domain.RankingTabPoints
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "points":
			tab = domain.RankingTabPoints
		case "winrate":
			tab = domain.RankingTabWinRate
		case "streak":
			tab = domain.RankingTabStreak
		default:
			return fmt.Errorf("unknown ranking tab %q (want points, winrate or streak)", args[0])
		}
	}

	entries, err := client.TopRankings(ctx, tab)
	if err != nil {
		return err
	}
	renderRankings(entries)
	return nil
}

func cmdComments(ctx context.Context, client *makgora.Client, state *stateFile, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: comments <voteId>")
	}
	voteID, err := parseID(args[0], "vote id")
	if err != nil {
		return err
	}
	comments, err := client.VoteComments(ctx, voteID)
	if err != nil {
		return err
	}
	renderThread(commentview.Annotate(comments, state.User().ID))
	return nil
}
