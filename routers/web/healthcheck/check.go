// Copyright 2022 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package healthcheck

import (
	"net/http"
	"strings"
	"time"

	"code.gitea.io/charter/modules/json"
	"code.gitea.io/charter/modules/log"
	"code.gitea.io/charter/modules/setting"
	"code.gitea.io/charter/modules/storage"
	"code.gitea.io/charter/modules/util"
)

type status string

const (
	// pass healthy (acceptable aliases: "ok" to support Node's Terminus and "up" for Java's SpringBoot)
	// fail unhealthy (acceptable aliases: "error" to support Node's Terminus and "down" for Java's SpringBoot), and
	// warn healthy, with some concerns.
	//
	// ref https://datatracker.ietf.org/doc/html/draft-inadarei-api-health-check#section-3.1
	pass status = "pass"
	fail status = "fail"
	warn status = "warn"
)

func (s status) ToHTTPStatus() int {
	if s == pass || s == warn {
		return http.StatusOK
	}
	return http.StatusFailedDependency
}

type checks map[string][]componentStatus

// response is the data returned by the health endpoint, which will be marshaled to JSON format
type response struct {
	Status      status `json:"status"`
	Description string `json:"description"`      // a human-friendly description of the service
	Checks      checks `json:"checks,omitempty"` // The Checks Object
}

// componentStatus presents one status of a single check object
type componentStatus struct {
	Status status `json:"status"`
	Time   string `json:"time"`             // the date-time, in ISO8601 format
	Output string `json:"output,omitempty"` // this field SHOULD be omitted for "pass" state.
}

// Check is the health check API handler
func Check(w http.ResponseWriter, r *http.Request) {
	rsp := response{
		Status:      pass,
		Description: "charter",
		Checks:      make(checks),
	}

	statuses := []status{
		checkMediaStorage(rsp.Checks),
		checkFonts(rsp.Checks),
	}
	for _, s := range statuses {
		if s == fail {
			rsp.Status = fail
			break
		}
		if s == warn {
			rsp.Status = warn
		}
	}

	data, _ := json.MarshalIndent(rsp, "", "  ")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Status.ToHTTPStatus())
	_, _ = w.Write(data)
}

// checkMediaStorage writes and removes a probe object in the media storage
func checkMediaStorage(checks checks) status {
	const probe = ".healthcheck"
	st := componentStatus{Status: pass, Time: getCheckTime()}
	if _, err := storage.Media.Save(probe, strings.NewReader("ok"), 2); err != nil {
		st.Status = fail
		st.Output = err.Error()
		log.Error("media storage health check failed with error: %v", err)
	} else {
		_ = storage.Media.Delete(probe)
	}
	checks["storage:media"] = []componentStatus{st}
	return st.Status
}

// checkFonts warns when the font directory is missing, charts are then drawn with the built-in font
func checkFonts(checks checks) status {
	st := componentStatus{Status: pass, Time: getCheckTime()}
	if ok, _ := util.IsDir(setting.Charter.FontPath); !ok {
		st.Status = warn
		st.Output = "font directory " + setting.Charter.FontPath + " does not exist"
	}
	checks["charter:fonts"] = []componentStatus{st}
	return st.Status
}

func getCheckTime() string {
	return time.Now().UTC().Format(time.RFC3339)
}
