package testutil

import "testing"

// TodoListEntry is the entry file of the todo-list fixture.
const TodoListEntry = "src/index.js"

// TodoListComponents is the number of components the fixture declares,
// counting the ReactDOM.render root.
const TodoListComponents = 7

// TodoList is a small todo application. Every component is rendered from
// the entry point except Item.
var TodoList = map[string]string{
	"jsconfig.json": `{
  // aliases used by DoAction
  "compilerOptions": {
    "baseUrl": "src",
    "paths": {
      "@components/*": ["src/component/*"],
    },
  },
}
`,
	"src/index.js": `import React from 'react';
import ReactDOM from 'react-dom';
import './index.css';
import App from './App';

ReactDOM.render(<App />, document.getElementById('root'));
`,
	"src/index.css": `body { margin: 0; }
`,
	"src/App.js": `import React from 'react';
import Action from './component/Action'
import DoAction from './component/DoAction'
import Done from './component/Done'

import './App.css';
class App extends React.Component {
  state = {
    actions: {},
    dones: {}
  }

  addActions = (act) => {
    const actions = { ...this.state.actions }
    actions[Date.now()] = act
    this.setState({ actions })
  }

  render() {
    return (
      <div className="App row flex-center flex-spaces card-height" >
        <Action addActions={this.addActions} />
        <DoAction actions={this.state.actions} />
        <Done dones={this.state.dones} />
      </div>
    )
  }
}

export default App;
`,
	"src/App.css": `.App { display: flex; }
`,
	"src/component/Action.js": `import React from 'react'

class Action extends React.Component {
  inpMsg = React.createRef()

  handleAdd = (event) => {
    event.preventDefault()
    this.props.addActions(this.inpMsg.current.value)
    this.inpMsg.current.value = ""
  }

  render() {
    return (
      <form onSubmit={this.handleAdd} className="card card-width">
        <div className="card-header">TO-DO</div>
        <input type="text" ref={this.inpMsg}></input>
        <button className="btn-small" onClick={this.handleAdd}>ADD THIS ACTION</button>
      </form>
    )
  }
}

export default Action
`,
	"src/component/DoAction.js": `import React from 'react'
import Header from '@components/Header'

class DoAction extends React.Component {
  render() {
    const actionsKeys = Object.keys(this.props.actions)
    return (
      <div className="card card-width">
        <Header />
        <ol>
          {actionsKeys.map(key => {
            return (
              <li key={key}>{this.props.actions[key]}</li>
            )
          })}
        </ol>
      </div>
    )
  }
}

export default DoAction
`,
	"src/component/Done.js": `import React from 'react'

class Done extends React.Component {
  render() {
    const donesKeys = Object.keys(this.props.dones)
    return (
      <div className="card card-width">
        <div className="card-header">DONE</div>
        <ol>
          {donesKeys.map(key => <li key={key}>{this.props.dones[key]}</li>)}
        </ol>
      </div>
    )
  }
}

export default Done
`,
	"src/component/Item.js": `import React from 'react'

const Item = ({ text }) => {
  return <li className="item">{text}</li>
}

export default Item
`,
	"src/component/Header/index.js": `export { default as Header } from './Header'
`,
	"src/component/Header/Header.js": `import React from 'react'

export default function Header() {
  return <div className="card-header">DOING</div>
}
`,
}

// NewTodoListProject writes the todo-list fixture into a fresh project.
func NewTodoListProject(t *testing.T) *TestProject {
	t.Helper()

	p := NewTestProject(t, "reactjs-todo-list")
	p.WriteTree(TodoList)
	return p
}
