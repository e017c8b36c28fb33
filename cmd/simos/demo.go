package main

// demoScenario walks a parent through fork, a disk read and the child's exit
const demoScenario = `
name: demo
steps:
  - run: create(1GiB, 5)
    expect:
      cpu: 2
  - run: fork()
    expect:
      ready: [3]
  - run: read(0, "boot.log")
    expect:
      cpu: 0
      disk:
        0: [2]
  - run: dispatch()
    expect:
      cpu: 3
  - run: complete(0)
    expect:
      cpu: 3
      ready: [2]
  - run: exit()
    expect:
      cpu: 0
      ready: [2]
  - run: create(2GiB, 1)
    expect:
      ok: true
      cpu: 4
`
