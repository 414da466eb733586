package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/sirupsen/logrus"

	"github.com/sakanhq/sakan-backend/pkg/review"
	"github.com/sakanhq/sakan-backend/pkg/storage"
	"github.com/sakanhq/sakan-backend/pkg/storage/model"
	"github.com/sakanhq/sakan-backend/pkg/storage/opensearch"
)

var args struct {
	ApplicationID        string `arg:"positional,required"`
	FsPath               string `arg:"--fs-path,env:FS_PATH"`
	Json                 bool   `arg:"-j,--json" help:"Print alerts as JSON instead of text"`
	LogLevel             string `arg:"--log-level,env:LOG_LEVEL" default:"info"`
	OsAddr               string `arg:"--opensearch-addr,env:OPENSEARCH_ADDR"`
	OsInsecureSkipVerify bool   `arg:"--opensearch-insecure-skip-verify,env:OPENSEARCH_SKIP_TLS"`
	OsPassword           string `arg:"--opensearch-password,env:OPENSEARCH_PASSWORD"`
	OsUsername           string `arg:"--opensearch-username,env:OPENSEARCH_USERNAME"`
	StorageType          string `arg:"--storage-type,env:STORAGE_TYPE" default:"fs"`
}

var log = logrus.New()

func main() {
	arg.MustParse(&args)

	store := getStore()
	app, err := store.GetApplication(args.ApplicationID)
	if err != nil {
		log.Fatalf("load application: %v", err)
	}
	catalog, err := store.Catalog()
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	slots := review.DocumentSlots(catalog, app.AdminMessage)
	for _, slot := range slots {
		st := review.SlotStatus(app.Documents, slot)
		state := "pending"
		switch {
		case st.IsEmpty:
			state = "missing"
		case st.AllRejected:
			state = "rejected"
		case st.HasRejected && st.HasAccepted:
			state = "accepted (earlier rejection on file)"
		case st.HasAccepted:
			state = "accepted"
		}
		extra := ""
		if slot.IsExtra {
			extra = " (extra)"
		}
		fmt.Printf("%s%s: %s\n", slot.Label, extra, state)
	}

	alerts := review.CalculateAlerts(app.Documents, slots, app.AdminMessage, app.Status, app.ID)
	if args.Json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(alerts); err != nil {
			log.Fatalf("encode alerts: %v", err)
		}
		return
	}
	for _, a := range alerts {
		var labels []string
		for _, s := range a.Slots {
			labels = append(labels, s.Label)
		}
		fmt.Printf("[%s] %s %s %s\n", a.Severity, a.Type, strings.Join(labels, ", "), a.Message)
	}
}

func getStore() model.Store {
	switch strings.ToLower(args.StorageType) {
	case "fs":
		return storage.SetupFsStore(args.FsPath)
	case "opensearch":
		return storage.SetupOpensearchStore(opensearch.Config{
			Addr:               args.OsAddr,
			Username:           args.OsUsername,
			Password:           args.OsPassword,
			InsecureSkipVerify: args.OsInsecureSkipVerify,
		})
	}

	log.Fatalf("unknown storage type: %s", args.StorageType)
	return nil
}
