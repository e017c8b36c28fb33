package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/simos/model"
	"github.com/viant/simos/service/dao/store"
	"gopkg.in/yaml.v3"
)

func TestRun_Demo(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	dumpPath := filepath.Join(dir, "state.yaml")
	archivePath := filepath.Join(dir, "processes")
	err := run(ctx, &settings{dumpURL: dumpPath, archiveURL: archivePath, quiet: true})
	if !assert.NoError(t, err) {
		return
	}
	data, err := os.ReadFile(dumpPath)
	if !assert.NoError(t, err) {
		return
	}
	state := map[string]interface{}{}
	assert.NoError(t, yaml.Unmarshal(data, &state))
	assert.EqualValues(t, 4, state["cpu"])
	assert.EqualValues(t, []interface{}{2}, state["ready"])

	processStore, err := store.NewFsStore[model.PID, model.Process](ctx, archivePath, func(p *model.Process) model.PID { return p.PID })
	if !assert.NoError(t, err) {
		return
	}
	exited, err := processStore.Load(ctx, 3)
	if assert.NoError(t, err) {
		assert.True(t, exited.Zombie)
		assert.EqualValues(t, 2, exited.Parent)
	}
	processes, err := processStore.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, processes, 4)
}

func TestRun_InvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(configPath, []byte("ram: 10\nosSize: 100\n"), 0644))
	err := run(context.Background(), &settings{configURL: configPath, quiet: true})
	assert.Error(t, err)
}
