// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package facts

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/goccy/go-yaml"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"

	iu "github.com/choria-io/bootstrap/internal/util"
	"github.com/choria-io/bootstrap/metrics"
	"github.com/choria-io/bootstrap/model"
)

// Tools are the build tools whose location is reported in the tools fact
var Tools = []string{"cargo", "rustc", "npm", "node", "git", "make", "go"}

// ConfigDirectories are the directories searched for facts.json and facts.yaml, later ones override earlier ones
func ConfigDirectories() []string {
	return []string{
		"/etc/choria/bootstrap",
		filepath.Join(xdg.ConfigHome, "choria", "bootstrap"),
	}
}

// StandardFacts returns a map of standard facts merged with facts files from the configuration directories
func StandardFacts(ctx context.Context, log model.Logger) (map[string]any, error) {
	timer := prometheus.NewTimer(metrics.FactGatherTime.WithLabelValues())
	defer timer.ObserveDuration()

	sf, err := standardFacts(ctx)
	if err != nil {
		return nil, err
	}

	for _, dir := range ConfigDirectories() {
		sf = mergeFactsFile(sf, filepath.Join(dir, "facts.json"), json.Unmarshal, log)
		sf = mergeFactsFile(sf, filepath.Join(dir, "facts.yaml"), yaml.Unmarshal, log)
	}

	return sf, nil
}

func mergeFactsFile(facts map[string]any, file string, unmarshal func([]byte, any) error, log model.Logger) map[string]any {
	if !iu.FileExists(file) {
		return facts
	}

	log.Debug("Reading facts", "file", file)

	fb, err := os.ReadFile(file)
	if err != nil {
		log.Error("Failed to read facts file", "file", file, "error", err)
		return facts
	}

	var f map[string]any
	err = unmarshal(fb, &f)
	if err != nil {
		log.Error("Failed to unmarshal facts file", "file", file, "error", err)
		return facts
	}

	return iu.DeepMergeMap(facts, f)
}

// toolFacts reports the path of every known build tool found in PATH
func toolFacts() map[string]any {
	tools := map[string]any{}

	for _, t := range Tools {
		p, found, _ := iu.ExecutableInPath(t)
		if found {
			tools[t] = p
		}
	}

	return tools
}

func standardFacts(ctx context.Context) (map[string]any, error) {
	var err error

	swapFacts := map[string]any{
		"info":    map[string]any{},
		"devices": map[string]any{},
	}
	memoryFacts := map[string]any{
		"swap":    swapFacts,
		"virtual": map[string]any{},
	}
	cpuFacts := map[string]any{
		"info":    []any{},
		"logical": runtime.NumCPU(),
	}
	partitionFacts := map[string]any{
		"partitions": []any{},
		"usage":      []any{},
	}
	hostFacts := map[string]any{
		"info": map[string]any{},
	}
	networkFacts := map[string]any{
		"interfaces": []any{},
	}

	virtual, err := mem.VirtualMemoryWithContext(ctx)
	if err == nil {
		memoryFacts["virtual"] = virtual
	}

	swap, err := mem.SwapMemoryWithContext(ctx)
	if err == nil {
		swapFacts["info"] = swap
	}
	swapDev, err := mem.SwapDevicesWithContext(ctx)
	if err == nil {
		swapFacts["devices"] = swapDev
	}

	cpuInfo, err := cpu.InfoWithContext(ctx)
	if err == nil {
		cpuFacts["info"] = cpuInfo
	}

	parts, err := disk.PartitionsWithContext(ctx, false)
	if err == nil && len(parts) > 0 {
		usages := []*disk.UsageStat{}

		for _, part := range parts {
			u, err := disk.UsageWithContext(ctx, part.Mountpoint)
			if err != nil {
				continue
			}
			usages = append(usages, u)
		}

		partitionFacts["partitions"] = parts
		partitionFacts["usage"] = usages
	}

	hostInfo, err := host.InfoWithContext(ctx)
	if err == nil {
		hostFacts["info"] = hostInfo
	}

	interfaces, err := net.InterfacesWithContext(ctx)
	if err == nil {
		networkFacts["interfaces"] = interfaces
	}

	return normalize(map[string]any{
		"host":      hostFacts,
		"network":   networkFacts,
		"partition": partitionFacts,
		"cpu":       cpuFacts,
		"memory":    memoryFacts,
		"tools":     toolFacts(),
	})
}

// normalize round trips facts through JSON so conditions see the same keys as lookup()
func normalize(facts map[string]any) (map[string]any, error) {
	j, err := json.Marshal(facts)
	if err != nil {
		return nil, err
	}

	var res map[string]any
	err = json.Unmarshal(j, &res)
	if err != nil {
		return nil, err
	}

	return res, nil
}
