package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/usyj/makgora-client/internal/commentview"
	"github.com/usyj/makgora-client/internal/domain"
	"github.com/usyj/makgora-client/internal/voteview"
)

var (
	headline = color.New(color.FgCyan, color.Bold).SprintfFunc()
	good     = color.New(color.FgGreen).SprintfFunc()
	bad      = color.New(color.FgRed).SprintfFunc()
	dim      = color.New(color.Faint).SprintfFunc()
)

func newTable(header ...string) *tablewriter.Table {
	table := tablewriter.NewTable(os.Stdout)
	table.Header(header)
	return table
}

func statusCell(s domain.VoteStatus) string {
	if s.Closed() {
		return bad("%s", string(s))
	}
	return good("%s", string(s))
}

func renderVotes(votes []domain.Vote) {
	if len(votes) == 0 {
		fmt.Println(dim("no votes"))
		return
	}
	table := newTable("ID", "Title", "Category", "Status", "Players", "Pot", "Ends")
	for _, v := range votes {
		table.Append([]string{
			strconv.FormatInt(v.ID, 10),
			v.Title,
			v.Category,
			statusCell(v.Status),
			strconv.Itoa(v.TotalParticipants),
			strconv.FormatInt(v.TotalPoints, 10),
			v.EndAt.Local().Format("2006-01-02 15:04"),
		})
	}
	table.Render()
}

func renderVoteView(view voteview.View) {
	fmt.Println(headline("#%d %s", view.VoteID, view.Title))
	fmt.Printf("%s  YES %d%% / DRAW %d%% / NO %d%%\n",
		statusCell(view.Status), view.Split.Yes, view.Split.Draw, view.Split.No)
	if view.Disabled {
		fmt.Println(dim("betting closed"))
	}
	if view.Position != nil {
		fmt.Printf("your position: %s\n", good("%s", view.Position.Display))
	}

	for _, opt := range view.Options {
		fmt.Printf("\n%s %s\n", headline("»"), opt.Title)
		table := newTable("Choice", "Side", "Players", "Share", "Odds")
		for _, ch := range opt.Choices {
			odds := ""
			if ch.Odds > 0 {
				odds = fmt.Sprintf("%.2fx", ch.Odds)
			}
			table.Append([]string{
				ch.Label,
				string(ch.Bucket),
				strconv.FormatInt(ch.Participants, 10),
				fmt.Sprintf("%d%%", ch.Percent),
				odds,
			})
		}
		table.Render()
	}
}

func renderBetslip(slip voteview.Betslip) {
	fmt.Println(headline("betslip for vote #%d", slip.VoteID))
	fmt.Printf("stake:           %d points\n", slip.Amount)
	fmt.Printf("expected odds:   %.2fx\n", slip.ExpectedOdds)
	fmt.Printf("expected reward: %s\n", good("%d points", slip.ExpectedReward))
	if slip.Disabled {
		fmt.Println(bad("betting is closed on this vote"))
	}
}

func renderThread(thread commentview.Thread) {
	if thread.Visible == 0 && len(thread.Roots) == 0 {
		fmt.Println(dim("no comments"))
		return
	}
	fmt.Println(headline("%d comments", thread.Visible))
	for _, root := range thread.Roots {
		renderNode(root)
	}
}

func renderNode(n commentview.Node) {
	indent := strings.Repeat("  ", n.Depth)
	author := n.Comment.Nickname
	if n.Own {
		author = good("%s (you)", author)
	}
	body := n.Comment.Content
	if n.Comment.Deleted {
		body = dim("%s", body)
	}
	fmt.Printf("%s%s %s  %s\n", indent, author,
		dim("· %s", n.Comment.CreatedAt.Local().Format("Jan 2 15:04")), body)
	for _, child := range n.Children {
		renderNode(child)
	}
}

func renderArticles(page domain.ArticlePage) {
	if len(page.Content) == 0 {
		fmt.Println(dim("no articles"))
		return
	}
	table := newTable("ID", "Title", "Source", "Category", "Published", "Views")
	for _, a := range page.Content {
		table.Append([]string{
			strconv.FormatInt(a.ID, 10),
			a.Title,
			a.SourceName,
			a.Category,
			a.PublishedAt.Local().Format("2006-01-02"),
			strconv.Itoa(a.ViewCount),
		})
	}
	table.Render()
}

func renderRankings(entries []domain.RankingEntry) {
	if len(entries) == 0 {
		fmt.Println(dim("no rankings"))
		return
	}
	table := newTable("Rank", "Nickname", "Points", "Win rate", "Streak")
	for _, e := range entries {
		table.Append([]string{
			strconv.Itoa(e.Rank),
			e.Nickname,
			strconv.FormatInt(e.Points, 10),
			fmt.Sprintf("%.1f%%", e.WinRate),
			strconv.Itoa(e.Streak),
		})
	}
	table.Render()
}

func renderStatistics(stats domain.VoteStatistics) {
	fmt.Println(headline("betting record"))
	fmt.Printf("votes:    %d (W%d / L%d, %.1f%%)\n",
		stats.TotalVotes, stats.WinCount, stats.LoseCount, stats.WinRate)
	fmt.Printf("wagered:  %d points\n", stats.TotalBet)
	fmt.Printf("won:      %s\n", good("%d points", stats.TotalReward))
	fmt.Printf("streak:   %d\n", stats.CurrentStreak)
}

func renderUser(u domain.User) {
	fmt.Println(headline("%s", u.Nickname))
	fmt.Printf("level:  %d\n", u.Level)
	fmt.Printf("points: %s\n", good("%d", u.Points))
	if u.Role == domain.RoleAdmin {
		fmt.Printf("role:   %s\n", bad("ADMIN"))
	}
}
