// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charter

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"code.gitea.io/charter/modules/charter"
	"code.gitea.io/charter/modules/setting"
	"code.gitea.io/charter/modules/util"
)

// CleanID turns s into a media id part: lower case, everything but [a-z0-9_.-]
// replaced by '_', runs of '_' collapsed and leading or trailing separators removed
func CleanID(s string) string {
	var sb strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
			sb.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				sb.WriteByte('_')
			}
			lastUnderscore = true
		}
	}
	return strings.Trim(sb.String(), "_.-")
}

// MediaID derives the media id of a chart block: the cleaned title when the block has one,
// else a hash of the whole block
func MediaID(namespace string, block *charter.Block, text string) string {
	name := ""
	if title, ok := block.Flags["title"]; ok {
		name = CleanID(title)
	}
	if name == "" {
		sum := md5.Sum([]byte(text))
		name = "notitle_" + hex.EncodeToString(sum[:])
	}
	id := "chart-" + name + ".png"
	if ns := strings.Trim(namespace, ":"); ns != "" {
		return ns + ":" + id
	}
	return id
}

// MediaPath maps a media id to its path in the media storage
func MediaPath(mediaID string) string {
	return util.PathJoinRel(strings.ReplaceAll(mediaID, ":", "/"))
}

// MediaURL returns the URL a media id is served at
func MediaURL(mediaID string) string {
	return setting.MediaURLPrefix + MediaPath(mediaID)
}
