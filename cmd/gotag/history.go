package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gotag/gotag/internal/pathutil"
	"github.com/gotag/gotag/internal/runlog"
)

func newHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List past runs, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := newAppContext()
			return printHistory(app.cfg.LogFolderPath())
		},
	}
}

func printHistory(logFolder string) error {
	entries, err := os.ReadDir(logFolder)
	if os.IsNotExist(err) {
		fmt.Println("No runs yet.")
		return nil
	}
	if err != nil {
		return err
	}

	type row struct {
		uuid    string
		modTime int64
	}
	var rows []row
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".json" {
			continue
		}
		rows = append(rows, row{uuid: e.Name()[:len(e.Name())-len(ext)], modTime: info.ModTime().UnixNano()})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].modTime > rows[j].modTime })

	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.uuid
	}
	shorten, err := pathutil.IDShortener(ids)
	if err != nil {
		shorten = func(uuid string) string { return uuid }
	}

	for _, r := range rows {
		log, err := runlog.ReadFile(filepath.Join(logFolder, r.uuid+".json"))
		if err != nil {
			continue
		}
		fmt.Printf("%s  %-20s  %s  %d cases\n", shorten(r.uuid), log.Metadata.Pipeline.Name, log.Metadata.Start, len(log.Results))
	}
	return nil
}
