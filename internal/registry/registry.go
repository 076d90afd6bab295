// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"fmt"
	"maps"
	"sort"
	"sync"

	"github.com/choria-io/bootstrap/model"
)

type providerEntry struct {
	factory model.ProviderFactory
}

var (
	providers = make(map[string]*providerEntry)
	mu        sync.Mutex
)

// Clear removes all registered providers
func Clear() {
	mu.Lock()
	defer mu.Unlock()

	providers = make(map[string]*providerEntry)
}

// Register registers a plugin
func Register(p any) error {
	switch tp := p.(type) {
	case model.ProviderFactory:
		return registerProvider(tp)
	default:
		return fmt.Errorf("cannot register provider of type %T", p)
	}
}

// MustRegister registers a plugin and panics if registration fails
func MustRegister(p any) {
	err := Register(p)
	if err != nil {
		panic(err)
	}
}

// registerProvider registers a step provider factory and returns an error if a provider with the same name already exists
func registerProvider(p model.ProviderFactory) error {
	mu.Lock()
	defer mu.Unlock()

	pn := p.Name()

	_, ok := providers[pn]
	if ok {
		return model.ErrDuplicateProvider
	}

	providers[pn] = &providerEntry{factory: p}

	return nil
}

// selectProviders returns the providers that can run steps on this node, lowest priority value first
func selectProviders(facts map[string]any, log model.Logger) []model.ProviderFactory {
	mu.Lock()
	defer mu.Unlock()

	type matched struct {
		prio int
		prov model.ProviderFactory
	}

	var found []*matched

	for _, v := range providers {
		ok, priority, err := v.factory.IsManageable(facts)
		if err != nil {
			log.Warn("Could not check if provider is manageable", "provider", v.factory.Name(), "err", err)
			continue
		}

		if ok {
			found = append(found, &matched{priority, v.factory})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].prio == found[j].prio {
			return found[i].prov.Name() < found[j].prov.Name()
		}
		return found[i].prio < found[j].prio
	})

	var result []model.ProviderFactory
	for _, v := range found {
		result = append(result, v.prov)
	}

	return result
}

// selectProvider finds a provider matching name and checks it's manageable before returning it
func selectProvider(providerName string, facts map[string]any, log model.Logger) (model.ProviderFactory, error) {
	mu.Lock()
	defer mu.Unlock()

	p, ok := providers[providerName]
	if !ok {
		log.Debug("No providers found", "provider", providerName)
		return nil, model.ErrProviderNotFound
	}

	ok, _, err := p.factory.IsManageable(facts)
	if err != nil {
		log.Debug("Provider detection failed", "provider", p.factory.Name(), "err", err)
		return nil, fmt.Errorf("%w: %w", model.ErrProviderNotManageable, err)
	}

	if !ok {
		log.Debug("Provider cannot be used", "provider", p.factory.Name())
		return nil, fmt.Errorf("%w: %s", model.ErrProviderNotManageable, "not applicable to instance")
	}

	return p.factory, nil
}

// Names returns a sorted list of all registered provider names
func Names() []string {
	mu.Lock()
	defer mu.Unlock()

	var res []string
	for k := range maps.Keys(providers) {
		res = append(res, k)
	}

	sort.Strings(res)

	return res
}

// FindSuitableProvider creates the named provider, or the best manageable one when provider is empty
func FindSuitableProvider(provider string, facts map[string]any, log model.Logger, runner model.CommandRunner) (model.StepProvider, error) {
	var selected model.ProviderFactory

	if provider == "" {
		provs := selectProviders(facts, log)
		if len(provs) == 0 {
			return nil, model.ErrNoSuitableProvider
		}

		selected = provs[0]
	} else {
		prov, err := selectProvider(provider, facts, log)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", model.ErrStepInvalid, err)
		}

		selected = prov
	}

	return selected.New(log, runner)
}
